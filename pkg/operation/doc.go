/*
Package operation implements the validate-and-sort pass of wavsort.

	+-------------+
	|    Scan     |
	|   (Walk)    |
	+------+------+
	       |
	+------+------+
	|    Check    |
	|  (Decode)   |
	+------+------+
	       |
	+------+------+
	|  Relocate   |
	|  (Status)   |
	+-------------+

🎯 Purpose:
- Walks the input root for WAVE candidates
- Decodes every candidate completely
- Copies invalid files into the mirrored output tree

🔄 Flow:
1. The output root is created, even for a dry run
2. Each candidate is checked; the first decode error makes it invalid
3. Invalid files are copied to the same relative path (or reported under --dry-run)
4. Counters are returned for the summary

⚡ Error Handling:
- Unreadable traversal entries are skipped by the scan package
- Open and decode errors classify a file as invalid and never stop the run
- Relative path, mkdir and copy errors stop the run and are returned

Files are processed one at a time. There are no retries.

🔍 Example:

	sorter, err := operation.New(operation.Options{Config: cfg, Reporter: logger})
	if err != nil {
		return err
	}
	counters, err := sorter.Execute(ctx)
*/
package operation

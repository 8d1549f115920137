/*
Package status tracks run outcomes and owns the output tree for wavsort.

	            +-------------+
	            |   Status    |
	            |  (Outcome)  |
	            +------+------+
	                   |
	      +-----------+-----------+
	      |                       |
	+-----+-----+           +----+----+
	| Counters  |           | Manager |
	| (Totals)  |           | (Files) |
	+-----------+           +---------+

🎯 Purpose:
- Counts valid and invalid files for the summary
- Creates the output root before anything is copied
- Copies invalid files to the same relative path under the output root

⚡ Notes:
- Relocate overwrites an existing target; the last writer wins
- Permission bits of the source are carried over to the copy
- Nothing is cleaned up when a copy fails
*/
package status

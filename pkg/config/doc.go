/*
Package config manages configuration parsing and validation for wavsort.

	            +-------------+
	            |   Config    |
	            |  (Run cfg)  |
	            +------+------+
	                   |
	      +-----------+-----------+-----------+
	      |                       |           |
	+-----+-----+           +----+----+  +---+----+
	|   YAML    |           |   HCL   |  |  JSON  |
	| Parser    |           | Parser  |  | Parser |
	+-----------+           +---------+  +--------+

🎯 Purpose:
- Holds the run configuration built by the command line
- Loads optional settings files (dry_run, debug, ignore)
- Validates paths and ignore patterns before the scan starts

🔄 Flow:
1. The command line fills Config from positional arguments and flags
2. Load parses a settings file chosen by --config, by extension
3. Settings.ApplyTo merges values; explicit flags win
4. Validate rejects empty paths and malformed patterns

🔍 Example:

	cfg := &config.Config{Input: "in", Output: "out"}
	s, err := config.Load(ctx, "wavsort.yaml")
	if err != nil {
		return err
	}
	s.ApplyTo(cfg, cmd.Flags().Changed)
	if err := cfg.Validate(); err != nil {
		return err
	}
*/
package config

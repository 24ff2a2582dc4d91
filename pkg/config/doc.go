/*
Package config loads the settings shared by every filemgr command.

	                +-------------+
	                |   Config    |
	                | (Settings)  |
	                +------+------+
	                       |
	      +----------------+----------------+
	      |                |                |
	+-----+-----+    +-----+-----+    +-----+-----+
	|   YAML    |    |   JSON    |    |    HCL    |
	|  Parser   |    |  Parser   |    |  Parser   |
	+-----------+    +-----------+    +-----------+

🎯 Purpose:
- Finds and parses .filemgr.yaml, .filemgr.yml, .filemgr.json or .filemgr.hcl
- Rejects unknown keys so typos surface early
- Fills defaults and validates modes, patterns and archive settings

🔄 Flow:
1. Find looks for a config file in a directory (or Load takes a path)
2. The parser registered for the file suffix decodes it
3. Validate fills defaults and checks every value
4. Commands read the validated values, flags override them

⚡ Settings:
- separator: word splitting sources from targets (default "to")
- overwrite: let copies and extraction replace existing files
- follow_links: walk through symbolic links to directories
- skip_binary: search only files whose content is text
- dir_mode / file_mode: octal modes for created entries
- ignore_patterns: doublestar patterns skipped by every walk
- archive: default format and compression level

🔍 Example:

	cfg, err := config.Find(ctx, ".")
	if err != nil {
		return err
	}
	engine := transfer.New(transfer.Options{
		DirMode:   cfg.DirPerm(),
		Overwrite: cfg.Overwrite,
	})
*/
package config

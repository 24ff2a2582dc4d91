/*
Package operation turns a parsed Command into engine calls.

	+-------------+
	|   Command   |
	| (CLI input) |
	+------+------+
	       |
	+------+------+
	|   Runner    |
	| (Dispatch)  |
	+------+------+
	       |
	+------+------+------+------+
	|             |             |
	transfer      archive       search

🎯 Purpose:
- Validates operands before any filesystem access
- Picks the pairing plan and the walk depth for each command
- Collects every outcome into one status.Result

🔄 Flow:
1. The CLI splits arguments at the separator word into a Command
2. Run checks operand counts and source kinds
3. The matching engine runs, best effort across all pairs
4. The Result goes back to the CLI, which renders it

⚡ Depth:
- Command.Depth above zero wins
- otherwise Recursive walks the whole tree
- otherwise only immediate children are touched

🔍 Example:

	runner := operation.NewRunner(transfer.New(opts.Transfer), opts)
	res := runner.Run(ctx, operation.Command{
		Kind:    operation.CopyDir,
		Sources: []string{"src"},
		Targets: []string{"backup"},
		Recursive: true,
	})
*/
package operation

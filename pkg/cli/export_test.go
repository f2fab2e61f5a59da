package cli

// RunWithWriter runs the command line with output sent to a custom writer
var RunWithWriter = run

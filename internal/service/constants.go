package service

// Shell settings for command execution
const (
	// DefaultShell is the interpreter every command line is handed to
	DefaultShell = "sh"
	// DefaultShellFlag makes the shell read the command from its argument
	DefaultShellFlag = "-c"
	// DryRunOutputPrefix prefixes the single output line of a dry-run command
	DryRunOutputPrefix = "Executed: "
)

package orchestrator

// CI output keys, printed as key=value lines when CI output is enabled
const (
	CIKeySessionID    = "session_id"
	CIKeyBranch       = "branch"
	CIKeyCommit       = "commit"
	CIKeyTags         = "tags"
	CIKeyStatus       = "status"
	CIKeyPending      = "pending_remotes"
	CIKeyMissing      = "missing_tags"
	CIKeyMissingLocal = "missing_local_tags"
)

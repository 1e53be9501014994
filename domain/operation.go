package domain

// Operation names a public registry call.
type Operation string

const (
	OpInitialize       Operation = "initialize"
	OpPauseService     Operation = "pause-service"
	OpResumeService    Operation = "resume-service"
	OpSendMessage      Operation = "send-anonymous-message"
	OpSendBulkMessages Operation = "send-bulk-messages"
	OpGetMessage       Operation = "get-message"
	OpGetMessageCount  Operation = "get-message-count"
	OpDoesMessageExist Operation = "does-message-exist"
	OpGetLastMessageID Operation = "get-last-message-id"
	OpGetServiceStatus Operation = "get-service-status"
)

// ReadOnly reports whether the operation leaves state untouched.
func (o Operation) ReadOnly() bool {
	switch o {
	case OpGetMessage, OpGetMessageCount, OpDoesMessageExist, OpGetLastMessageID, OpGetServiceStatus:
		return true
	default:
		return false
	}
}

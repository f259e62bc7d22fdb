package cli

const (
	MsgUsernameRequired = "username is required"
	MsgInvalidUsername  = "username must be 3-32 letters or digits"
	MsgAccountExists    = "that username is already taken"
	MsgAccountNotFound  = "no account with that username"
	MsgInternal         = "internal error"
)

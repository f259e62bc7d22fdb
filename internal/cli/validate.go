package cli

import "errors"

func (a *App) validateUsername(username string) error {
	if username == "" {
		return errors.New(MsgUsernameRequired)
	}

	if err := a.validator.Var(username, "min=3,max=32,alphanum"); err != nil {
		return errors.New(MsgInvalidUsername)
	}

	return nil
}

package domain

import "errors"

var (
	ErrEventNotFound       = errors.New("event not found")
	ErrInvalidEventID      = errors.New("invalid event id")
	ErrInvalidStatus       = errors.New("invalid event status")
	ErrInvalidQuestionType = errors.New("invalid question type")
	ErrQuestionTextBlank   = errors.New("question text is required")
	ErrNotEnoughOptions    = errors.New("choice questions need at least two options")
	ErrNoQuestions         = errors.New("an event cannot be active without questions")
	ErrEventHasResponses   = errors.New("event already has responses")

	ErrSubmissionFailed  = errors.New("response submission failed")
	ErrAnswerPersistence = errors.New("failed to persist answers")

	ErrUserNotFound       = errors.New("user not found")
	ErrLoginTaken         = errors.New("login already in use")
	ErrInvalidRole        = errors.New("invalid role")
	ErrInvalidUserStatus  = errors.New("invalid user status")
	ErrInvalidCredentials = errors.New("invalid credentials or inactive user")
	ErrPasswordTooShort   = errors.New("password must have at least 8 characters")
)

package domain

import (
	"errors"
	"time"
)

// AuditAction identifies a recorded user action.
type AuditAction string

const (
	ActionLogin        AuditAction = "LOGIN"
	ActionLoginFailed  AuditAction = "LOGIN_FAILED"
	ActionSignup       AuditAction = "SIGNUP"
	ActionLogout       AuditAction = "LOGOUT"
	ActionFilterChange AuditAction = "FILTER_CHANGE"
	ActionPreference   AuditAction = "PREFERENCE_CHANGE"
	ActionRefresh      AuditAction = "REFRESH"
	ActionReportExport AuditAction = "REPORT_EXPORT"
	ActionDataExport   AuditAction = "DATA_EXPORT"
)

var (
	ErrInvalidAction = errors.New("invalid audit action")
	ErrMissingActor  = errors.New("actor identification is required for auditing")
)

// AuditLog is a record of a user-initiated action.
type AuditLog struct {
	ID        uint        `json:"id"`
	UserID    string      `json:"user_id"`
	Email     string      `json:"email"`
	Action    AuditAction `json:"action"`
	Target    string      `json:"target"`
	Details   string      `json:"details"`
	Timestamp time.Time   `json:"timestamp"`
}

// NewAuditLog validates and stamps an audit entry.
func NewAuditLog(userID, email string, action AuditAction, target, details string) (*AuditLog, error) {
	if userID == "" && email == "" {
		return nil, ErrMissingActor
	}
	if !isValidAction(action) {
		return nil, ErrInvalidAction
	}
	return &AuditLog{
		UserID:    userID,
		Email:     email,
		Action:    action,
		Target:    target,
		Details:   details,
		Timestamp: time.Now().UTC(),
	}, nil
}

func isValidAction(action AuditAction) bool {
	switch action {
	case ActionLogin, ActionLoginFailed, ActionSignup, ActionLogout,
		ActionFilterChange, ActionPreference, ActionRefresh, ActionReportExport, ActionDataExport:
		return true
	}
	return false
}

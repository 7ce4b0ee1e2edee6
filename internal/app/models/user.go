package models

import (
	"strconv"
	"strings"

	"github.com/yigit/portaladmin/internal/pkg/validation"
)

// UserTypeStudent is the only user type listed by the dashboard.
const UserTypeStudent = "Student"

// Stored field names of a user document
const (
	FieldUserType   = "user_type"
	FieldUserAccess = "user_access"
	FieldSessionID  = "sessionId"
	FieldEndSubs    = "end_subs"
	FieldIsAdmitted = "isAdmitted"
	FieldUpdatedBy  = "updatedBy"
	FieldUpdatedAt  = "updatedAt"
)

// User is a student record. Absent text fields read as "N/A", except the
// session id which reads as empty.
type User struct {
	ID         string `json:"id"`
	SID        string `json:"sid"`
	FullName   string `json:"fullname"`
	Email      string `json:"email"`
	IsAdmitted bool   `json:"isAdmitted"`
	UserType   string `json:"user_type"`
	UserAccess string `json:"user_access"`
	Phone      int64  `json:"phone"`
	EndSubs    string `json:"end_subs"`
	SessionID  string `json:"sessionId"`
}

// UserFromDocument maps a stored document onto a User.
func UserFromDocument(id string, data map[string]any) User {
	return User{
		ID:         id,
		SID:        stringOr(data, "sid", NotAvailable),
		FullName:   stringOr(data, "fullname", NotAvailable),
		Email:      stringOr(data, "email", NotAvailable),
		IsAdmitted: boolOr(data, FieldIsAdmitted, false),
		UserType:   stringOr(data, FieldUserType, NotAvailable),
		UserAccess: stringOr(data, FieldUserAccess, NotAvailable),
		Phone:      intOr(data, "phone", 0),
		EndSubs:    stringOr(data, FieldEndSubs, NotAvailable),
		SessionID:  stringOr(data, FieldSessionID, ""),
	}
}

// Batch is the lower-cased access-tier text before its first "-",
// e.g. "batch 1" for "Batch 1 - Online".
func (u User) Batch() string {
	head, _, _ := strings.Cut(u.UserAccess, "-")
	return strings.ToLower(strings.TrimSpace(head))
}

// SearchText joins every displayed value, lower-cased, for free-text search.
func (u User) SearchText() string {
	return strings.ToLower(strings.Join([]string{
		u.ID,
		u.SID,
		u.FullName,
		u.Email,
		strconv.FormatBool(u.IsAdmitted),
		u.UserType,
		u.UserAccess,
		strconv.FormatInt(u.Phone, 10),
		u.EndSubs,
		u.SessionID,
	}, " "))
}

// Draft copies the editable fields.
func (u User) Draft() *UserDraft {
	return &UserDraft{
		ID:         u.ID,
		UserAccess: u.UserAccess,
		SessionID:  u.SessionID,
		EndSubs:    u.EndSubs,
		IsAdmitted: u.IsAdmitted,
	}
}

// UserDraft holds the fields an operator may change. Users are never
// created from the dashboard, so a draft always names an existing record.
type UserDraft struct {
	ID         string `json:"id" validate:"required"`
	UserAccess string `json:"user_access"`
	SessionID  string `json:"sessionId"`
	EndSubs    string `json:"end_subs"`
	IsAdmitted bool   `json:"isAdmitted"`
}

func (d *UserDraft) RecordID() string { return d.ID }

func (d *UserDraft) Validate() error { return validation.Struct(d) }

func (d *UserDraft) Clone() *UserDraft {
	if d == nil {
		return nil
	}
	c := *d
	return &c
}

// Fields returns the editable fields in their stored form.
func (d *UserDraft) Fields() map[string]any {
	return map[string]any{
		FieldUserAccess: d.UserAccess,
		FieldSessionID:  d.SessionID,
		FieldEndSubs:    d.EndSubs,
		FieldIsAdmitted: d.IsAdmitted,
	}
}

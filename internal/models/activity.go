package models

import "time"

type ActivityStatus string

const (
	ActivityStatusPending    ActivityStatus = "PENDING"
	ActivityStatusInProgress ActivityStatus = "IN_PROGRESS"
	ActivityStatusCompleted  ActivityStatus = "COMPLETED"
	ActivityStatusScheduled  ActivityStatus = "SCHEDULED"
)

func (s ActivityStatus) IsValid() bool {
	switch s {
	case ActivityStatusPending, ActivityStatusInProgress, ActivityStatusCompleted, ActivityStatusScheduled:
		return true
	}
	return false
}

// ParseActivityStatus accepts "in-progress", "In_Progress" and similar spellings.
func ParseActivityStatus(s string) (ActivityStatus, bool) {
	status := ActivityStatus(normalizeEnum(s))
	return status, status.IsValid()
}

type ActivityPriority string

const (
	ActivityPriorityLow    ActivityPriority = "LOW"
	ActivityPriorityMedium ActivityPriority = "MEDIUM"
	ActivityPriorityHigh   ActivityPriority = "HIGH"
)

func (p ActivityPriority) IsValid() bool {
	switch p {
	case ActivityPriorityLow, ActivityPriorityMedium, ActivityPriorityHigh:
		return true
	}
	return false
}

func ParseActivityPriority(s string) (ActivityPriority, bool) {
	priority := ActivityPriority(normalizeEnum(s))
	return priority, priority.IsValid()
}

// Activity is a dated unit of work assigned to one user.
//
// AssignedUserName caches AssignedUser.Username so list queries can filter
// without a join. Only AssignTo may write it.
type Activity struct {
	ID               uint64           `gorm:"primarykey" json:"id"`
	AssignedUserID   uint64           `gorm:"not null;index" json:"assigned_user_id"`
	AssignedUserName string           `gorm:"type:varchar(50);index" json:"assigned_user_name"`
	AssignedByID     *uint64          `gorm:"index" json:"assigned_by_id,omitempty"`
	Title            string           `gorm:"type:varchar(255);not null" json:"title"`
	Date             Date             `gorm:"not null;index" json:"date"`
	TimeOfDay        string           `gorm:"type:varchar(20)" json:"time"`
	Description      string           `gorm:"type:text;not null" json:"description"`
	Status           ActivityStatus   `gorm:"type:varchar(20);not null;default:'PENDING';index" json:"status"`
	Priority         ActivityPriority `gorm:"type:varchar(10);not null;default:'MEDIUM'" json:"priority"`
	CreatedAt        time.Time        `json:"created_at"`
	UpdatedAt        time.Time        `json:"updated_at"`

	// Relations
	AssignedUser *User `gorm:"foreignKey:AssignedUserID" json:"-"`
	AssignedBy   *User `gorm:"foreignKey:AssignedByID" json:"-"`
}

// AssignTo sets the assignee reference and re-derives the cached name from it.
func (a *Activity) AssignTo(user *User) {
	a.AssignedUser = user
	if user == nil {
		a.AssignedUserID = 0
		a.AssignedUserName = ""
		return
	}
	a.AssignedUserID = user.ID
	a.AssignedUserName = user.Username
}

// SetAssigner records who handed out the activity. A nil user clears it.
func (a *Activity) SetAssigner(user *User) {
	a.AssignedBy = user
	if user == nil {
		a.AssignedByID = nil
		return
	}
	id := user.ID
	a.AssignedByID = &id
}

// AssigneeName returns the cached name, falling back to the loaded
// reference when the cache is empty.
func (a *Activity) AssigneeName() string {
	if a.AssignedUserName == "" && a.AssignedUser != nil {
		return a.AssignedUser.Username
	}
	return a.AssignedUserName
}

// AssignerName returns the assigner's username when the relation is loaded.
func (a *Activity) AssignerName() string {
	if a.AssignedBy == nil {
		return ""
	}
	return a.AssignedBy.Username
}

// IsOverdue reports whether the activity is past due and not yet completed.
func (a *Activity) IsOverdue(today Date) bool {
	return a.Date.Before(today) && a.Status != ActivityStatusCompleted
}

// Package notify derives console notifications from overtime entries and
// pushes them to connected consoles.
package notify

import (
	"fmt"

	"otconsole/models"
)

type Kind string

const (
	KindPendingApproval      Kind = "Pending Approval"
	KindPendingFinalApproval Kind = "Pending Final Approval"
	KindUnconfirmed          Kind = "Unconfirmed OT"
)

type Notification struct {
	Type       Kind   `json:"type"`
	Message    string `json:"message"`
	EntryID    uint   `json:"entry_id"`
	EmployeeNo string `json:"employee_no"`
	Date       string `json:"date"`
}

type Summary struct {
	Items                []Notification `json:"items"`
	PendingApproval      int            `json:"pending_approval"`
	PendingFinalApproval int            `json:"pending_final_approval"`
	Unconfirmed          int            `json:"unconfirmed"`
	Total                int            `json:"total"`
}

// ForEntry returns every notification an entry raises. An entry can raise
// a stage notification and an unconfirmed notification at the same time.
func ForEntry(e models.OvertimeEntry) []Notification {
	var out []Notification
	day := e.Day()

	add := func(kind Kind, message string) {
		out = append(out, Notification{
			Type:       kind,
			Message:    message,
			EntryID:    e.ID,
			EmployeeNo: e.EmployeeNo,
			Date:       day,
		})
	}

	switch e.ApprovalStage {
	case models.StagePending:
		add(KindPendingApproval, fmt.Sprintf("OT for %s on %s is pending.", e.EmployeeNo, day))
	case models.StageApproved:
		add(KindPendingFinalApproval, fmt.Sprintf("Final approval needed for OT of %s on %s.", e.EmployeeNo, day))
	}
	if !e.IsConfirmed() {
		add(KindUnconfirmed, fmt.Sprintf("OT for %s on %s is unconfirmed.", e.EmployeeNo, day))
	}
	return out
}

func Summarize(entries []models.OvertimeEntry) Summary {
	s := Summary{Items: []Notification{}}
	for _, e := range entries {
		for _, n := range ForEntry(e) {
			switch n.Type {
			case KindPendingApproval:
				s.PendingApproval++
			case KindPendingFinalApproval:
				s.PendingFinalApproval++
			case KindUnconfirmed:
				s.Unconfirmed++
			}
			s.Items = append(s.Items, n)
		}
	}
	s.Total = len(s.Items)
	return s
}

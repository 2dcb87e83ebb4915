package state

// Saving is the post-save request lifecycle. Err holds the failure
// payload verbatim; the state machine never interprets it.
type Saving struct {
	Requesting bool
	Successful bool
	Err        error
	IsNew      bool
}

func ReduceSaving(prev Saving, action Action) Saving {
	switch a := action.(type) {
	case SavePostStart:
		return Saving{Requesting: true}
	case SavePostSuccess:
		return Saving{Successful: true, IsNew: a.IsNew}
	case SavePostFailure:
		return Saving{Err: a.Err}
	}
	return prev
}

// Notice is a user-facing message in the notice list.
type Notice struct {
	ID            string
	Status        string
	Content       string
	IsDismissible bool
}

// ReduceNotices appends a created notice, or replaces in place when one
// with the same ID already exists.
func ReduceNotices(prev []Notice, action Action) []Notice {
	switch a := action.(type) {
	case CreateNotice:
		next := make([]Notice, 0, len(prev)+1)
		replaced := false
		for _, n := range prev {
			if n.ID == a.Notice.ID {
				next = append(next, a.Notice)
				replaced = true
				continue
			}
			next = append(next, n)
		}
		if !replaced {
			next = append(next, a.Notice)
		}
		return next
	case RemoveNotice:
		found := false
		for _, n := range prev {
			if n.ID == a.ID {
				found = true
				break
			}
		}
		if !found {
			return prev
		}
		next := make([]Notice, 0, len(prev)-1)
		for _, n := range prev {
			if n.ID != a.ID {
				next = append(next, n)
			}
		}
		return next
	}
	return prev
}

// ReduceMobile tracks the viewport breakpoint flag pushed in by the
// rendering layer.
func ReduceMobile(prev bool, action Action) bool {
	if a, ok := action.(UpdateMobileState); ok {
		return a.IsMobile
	}
	return prev
}

// ReduceActivePanel tracks which sidebar panel is frontmost.
func ReduceActivePanel(prev string, action Action) string {
	if a, ok := action.(SetActivePanel); ok {
		return a.Panel
	}
	return prev
}

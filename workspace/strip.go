package workspace

import "sync/atomic"

const unsavedChangesPrompt = "You have unsaved changes. Are you sure you want to leave?"

// EditGuard is the shared "is editing" flag checked before leaving a tab.
// Confirm is asked when the flag is set; a nil Confirm refuses.
type EditGuard struct {
	editing atomic.Bool
	Confirm func(prompt string) bool
}

func NewEditGuard(confirm func(prompt string) bool) *EditGuard {
	return &EditGuard{Confirm: confirm}
}

func (g *EditGuard) SetEditing(editing bool) {
	g.editing.Store(editing)
}

func (g *EditGuard) Editing() bool {
	return g.editing.Load()
}

// Allow reports whether the user may leave the current tab, clearing the
// editing flag when they may.
func (g *EditGuard) Allow() bool {
	if g.editing.Load() {
		if g.Confirm == nil || !g.Confirm(unsavedChangesPrompt) {
			return false
		}
	}
	g.editing.Store(false)
	return true
}

// Strip is the tab bar: every switch or close passes the guard first.
type Strip struct {
	manager *Manager
	guard   *EditGuard
}

func NewStrip(manager *Manager, guard *EditGuard) *Strip {
	return &Strip{manager: manager, guard: guard}
}

// Switch reports whether the switch went ahead.
func (s *Strip) Switch(tabID string) bool {
	if !s.guard.Allow() {
		return false
	}
	s.manager.SwitchTab(tabID)
	return true
}

// Close reports whether the close went ahead.
func (s *Strip) Close(tabID string) bool {
	if !s.guard.Allow() {
		return false
	}
	s.manager.CloseTab(tabID)
	return true
}

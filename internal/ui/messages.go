package ui

import (
	"volumetric/internal/dialog"
	"volumetric/internal/toast"
)

// notifyMsg asks the loop to show a toast.
type notifyMsg struct {
	kind    toast.Kind
	title   string
	message string
}

// openDialogMsg hands a new dialog to the loop.
type openDialogMsg struct {
	d *dialog.Dialog
}

// opDoneMsg reports that the background operation returned.
type opDoneMsg struct {
	err error
}

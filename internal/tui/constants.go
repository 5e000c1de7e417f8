package tui

import "time"

// Layout constants for consistent spacing.
const (
	// ModalWidthMargin is the horizontal space reserved for modal borders
	// and padding.
	ModalWidthMargin = 6

	// ModalHeightMargin is the vertical space reserved for modal borders.
	ModalHeightMargin = 3

	// ChromeHeight is the number of rows taken by pane borders and the
	// status bar in the main layout.
	ChromeHeight = 3

	// TreeWidthPercent is the share of the terminal width given to the
	// tree pane.
	TreeWidthPercent = 40

	// TreePaneMinWidth is the narrowest the tree pane will go.
	TreePaneMinWidth = 30

	// StatusMessageMaxLength is the longest message shown on the status
	// bar before truncation.
	StatusMessageMaxLength = 100

	// ModalHeightMarginSmall is the vertical margin kept around modals
	// on small terminals.
	ModalHeightMarginSmall = 2

	// ViewportPaddingHorizontal is the horizontal padding inside modal
	// viewports (left + right).
	ViewportPaddingHorizontal = 4

	// ModalOverheadLines is the vertical overhead of a modal: title (2),
	// padding (2) and border (2).
	ModalOverheadLines = 6

	// ModalOverheadMinimal is the reduced overhead used on tiny
	// terminals.
	ModalOverheadMinimal = 4

	// HelpModalWidth is the width of the help modal.
	HelpModalWidth = 64

	// ErrorModalWidth is the width of the error detail modal.
	ErrorModalWidth = 70
)

// Timing constants.
const (
	// StatusMessageDuration is how long informational messages stay on
	// the status bar.
	StatusMessageDuration = 3 * time.Second

	// ErrorMessageDuration is how long error messages stay on the status
	// bar.
	ErrorMessageDuration = 6 * time.Second

	// LoadEventBuffer sizes the channel carrying progress and completion
	// events from a background load. It holds every event a single load
	// can produce so the goroutine never blocks after being superseded.
	LoadEventBuffer = 8
)

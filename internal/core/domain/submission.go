package domain

import "time"

// EnquiryCommand is one lead submission together with the browser marker state.
type EnquiryCommand struct {
	Input LeadInput
	// LastSubmittedAt comes from the submission marker, nil when the browser has none.
	LastSubmittedAt *time.Time
}

// ContactCommand is one contact page message together with the browser marker state.
type ContactCommand struct {
	Input           ContactInput
	LastSubmittedAt *time.Time
}

// SubmissionResult describes an accepted enquiry.
type SubmissionResult struct {
	Lead        Lead
	SubmittedAt time.Time
	// Demo is set when the lead was only logged because no store is configured.
	Demo    bool
	Message string
}

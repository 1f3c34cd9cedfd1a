package email

const (
	subjectSubmissionFmt             = "New submission for %q: %s"
	subjectSubmissionConfirmationFmt = "You were submitted to %q"
)

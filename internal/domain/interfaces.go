package domain

// ProgressStore persists full ProgressRecord snapshots. Save must be
// transactional: either the whole record is durably stored or nothing is.
// The tracker installs a new in-memory record only after Save returns nil.
type ProgressStore interface {
	Save(rec ProgressRecord) error
	Load() (rec ProgressRecord, found bool, err error)
}

// OccurrenceSink consumes occurrences after a transition has committed.
// Implementations surface toasts, confetti, push notifications — anything
// user-visible. The engine never calls a sink directly; only the tracker
// does, and only once per committed transition.
type OccurrenceSink interface {
	Publish(occs []Occurrence)
}

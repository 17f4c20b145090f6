package diag

//go:generate go tool go-enum --marshal --names

// Kind of diagnostic event.
// ENUM(translation-unavailable, marker-imbalance, layout-overflow, missing-style-backup, literal-marker, untranslated, strategy, language, bold-source)
type Kind string

// Degraded reports kinds which mean output is worse than it could have been,
// those are logged as warnings.
func (k Kind) Degraded() bool {
	switch k {
	case KindTranslationUnavailable, KindMarkerImbalance, KindLayoutOverflow, KindMissingStyleBackup, KindUntranslated:
		return true
	}
	return false
}

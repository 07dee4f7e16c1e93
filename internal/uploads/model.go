package uploads

// File describes a stored upload. OriginalName is metadata only; the content
// is addressed by StoredName.
type File struct {
	StoredName   string `json:"filename"`
	OriginalName string `json:"original_name"`
	Size         int64  `json:"size"`
}

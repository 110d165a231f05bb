package domain

type Rename struct {
	Source string
	Target string
	Bytes  int64
}

type Report struct {
	NoMetadata       []string
	Collisions       []string
	CopyFailed       []string
	NotRegular       []string
	InvalidTimestamp []string
	Copied           []Rename
}

func (r Report) CopiedBytes() int64 {
	var total int64
	for _, item := range r.Copied {
		total += item.Bytes
	}
	return total
}

// Skipped counts the entries that were not copied for any reason.
func (r Report) Skipped() int {
	return len(r.NoMetadata) + len(r.CopyFailed) + len(r.NotRegular) + len(r.InvalidTimestamp)
}

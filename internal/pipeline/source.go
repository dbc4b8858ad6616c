package pipeline

import "fmt"

type sourceKind int

const (
	sourceDir sourceKind = iota
	sourceFiles
)

// Source selects where candidate segments come from: one directory scanned
// non-recursively, or an explicit list of file paths. The two forms are a
// closed variant so discovery never inspects types at runtime; construct
// with [DirSource] or [FileSource].
type Source struct {
	kind  sourceKind
	dir   string
	files []string
}

// DirSource scans the immediate entries of path.
func DirSource(path string) Source {
	return Source{kind: sourceDir, dir: path}
}

// FileSource considers exactly the given paths, in any order.
func FileSource(paths ...string) Source {
	return Source{kind: sourceFiles, files: paths}
}

func (s Source) String() string {
	if s.kind == sourceDir {
		return fmt.Sprintf("directory %s", s.dir)
	}
	return fmt.Sprintf("%d explicit file(s)", len(s.files))
}

package build

var (
	Name    = "fstree"
	Version = "v0.0.0+unknown"
)

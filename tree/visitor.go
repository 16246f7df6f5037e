package tree

// Visitor has one operation per element variant.
//
// The depth of the visited element is passed explicitly, the root being visited at whatever depth the caller
// chooses (usually 0). A visitor which descends into a folder does so with Folder.AcceptChildren, which visits
// each child at depth+1.
type Visitor interface {
	VisitFile(file *File, depth int) error
	VisitFolder(folder *Folder, depth int) error
	VisitLink(link *Link, depth int) error
}

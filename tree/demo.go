package tree

// Demo builds the sample tree:
//
//	/
//	|_ fichier1.txt (23)
//	|_ tmp
//	   |_ fichier2.txt (3)
//	   |_ lien_dir1 -> tmp
//	   |_ lien_file2 -> fichier1.txt
func Demo() *Folder {
	root := NewFolder(RootPath)
	ff := NewFile("fichier1.txt", 23)
	root.Add(ff)

	dir2 := NewFolder("tmp")
	dir2.Add(NewFile("fichier2.txt", 3))
	dir2.Add(NewLink("lien_dir1", dir2))
	dir2.Add(NewLink("lien_file2", ff))
	root.Add(dir2)

	return root
}

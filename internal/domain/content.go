package domain

import (
	"strings"

	"github.com/google/uuid"
)

type ContentFileRef struct {
	Library string
	Folder  string
	Name    string
}

func (r ContentFileRef) String() string {
	return strings.Join([]string{r.Library, r.Folder, r.Name}, "/")
}

type ContentLibrary struct {
	ID   uuid.UUID `odata:"ContentLibraryId"`
	Name string    `odata:"Name"`
}

type ContentLibraryFolder struct {
	ID        uuid.UUID `odata:"ContentLibraryFolderId"`
	LibraryID uuid.UUID `odata:"ContentLibraryId"`
	Name      string    `odata:"Name"`
}

type LockState string

const (
	LockStateAvailable  LockState = "available"
	LockStateCheckedOut LockState = "checked_out"
)

type ContentFile struct {
	ID           uuid.UUID `odata:"ContentLibraryFileId"`
	LibraryID    uuid.UUID `odata:"ContentLibraryId"`
	FolderID     uuid.UUID `odata:"ParentContentLibraryFolderId"`
	Name         string    `odata:"Name"`
	CheckedOut   bool      `odata:"IsCheckedOut"`
	CheckedOutBy string    `odata:"CheckedOutBy"`
}

func (f ContentFile) Ref() EntityRef {
	return EntityRef{Set: EntitySetContentLibraryFiles, ID: f.ID}
}

func (f ContentFile) LockState() LockState {
	if f.CheckedOut {
		return LockStateCheckedOut
	}
	return LockStateAvailable
}

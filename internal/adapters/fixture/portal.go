// Package fixture is an in-memory Xpertdoc Portal used by tests and by the
// "fixture serve" command. It speaks the same OData dialect as the client
// adapter and enforces checkout ownership per authenticated user.
package fixture

import (
	"fmt"
	"io"
	"sync"

	"github.com/bnema/xpertdoc-portal-cli/internal/domain"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type templateLibrary struct {
	id   uuid.UUID
	name string
}

type templateGroup struct {
	id        uuid.UUID
	libraryID uuid.UUID
	name      string
}

type template struct {
	id            uuid.UUID
	groupID       uuid.UUID
	name          string
	content       []byte
	failureReason string
	pendingPolls  int
}

type execution struct {
	id         uuid.UUID
	templateID uuid.UUID
	remaining  int
	done       bool
}

type executionResult struct {
	id          uuid.UUID
	executionID uuid.UUID
	content     []byte
}

type contentLibrary struct {
	id   uuid.UUID
	name string
}

type contentFolder struct {
	id        uuid.UUID
	libraryID uuid.UUID
	name      string
}

type contentFile struct {
	id           uuid.UUID
	libraryID    uuid.UUID
	folderID     uuid.UUID
	name         string
	content      []byte
	checkedOutBy string
}

type Portal struct {
	mu sync.Mutex

	ambientUser string
	users       map[string]string
	sessions    map[string]string

	templateLibraries []templateLibrary
	templateGroups    []templateGroup
	templates         []template
	executions        map[uuid.UUID]*execution
	results           []executionResult
	contentLibraries  []contentLibrary
	contentFolders    []contentFolder
	contentFiles      []*contentFile

	executeCalls int
	log          logrus.FieldLogger
}

type Option func(*Portal)

func WithLogger(log logrus.FieldLogger) Option {
	return func(p *Portal) {
		p.log = log
	}
}

func New(seed Seed, opts ...Option) *Portal {
	discard := logrus.New()
	discard.SetOutput(io.Discard)

	p := &Portal{
		ambientUser: seed.AmbientUser,
		users:       make(map[string]string, len(seed.Users)),
		sessions:    map[string]string{},
		executions:  map[uuid.UUID]*execution{},
		log:         discard,
	}
	for _, opt := range opts {
		opt(p)
	}

	for _, user := range seed.Users {
		p.users[user.Username] = user.Password
	}

	for _, lib := range seed.TemplateLibraries {
		library := templateLibrary{id: uuid.New(), name: lib.Name}
		p.templateLibraries = append(p.templateLibraries, library)
		for _, grp := range lib.Groups {
			group := templateGroup{id: uuid.New(), libraryID: library.id, name: grp.Name}
			p.templateGroups = append(p.templateGroups, group)
			for _, tpl := range grp.Templates {
				p.templates = append(p.templates, template{
					id:            uuid.New(),
					groupID:       group.id,
					name:          tpl.Name,
					content:       []byte(tpl.Content),
					failureReason: tpl.FailureReason,
					pendingPolls:  tpl.PendingPolls,
				})
			}
		}
	}

	for _, lib := range seed.ContentLibraries {
		library := contentLibrary{id: uuid.New(), name: lib.Name}
		p.contentLibraries = append(p.contentLibraries, library)
		for _, fld := range lib.Folders {
			folder := contentFolder{id: uuid.New(), libraryID: library.id, name: fld.Name}
			p.contentFolders = append(p.contentFolders, folder)
			for _, f := range fld.Files {
				p.contentFiles = append(p.contentFiles, &contentFile{
					id:           uuid.New(),
					libraryID:    library.id,
					folderID:     folder.id,
					name:         f.Name,
					content:      []byte(f.Content),
					checkedOutBy: f.CheckedOutBy,
				})
			}
		}
	}

	return p
}

// ExecuteCalls reports how many Execute actions reached the portal.
func (p *Portal) ExecuteCalls() int {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.executeCalls
}

func (p *Portal) FileContent(ref domain.ContentFileRef) ([]byte, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	file, err := p.lookupFile(ref)
	if err != nil {
		return nil, err
	}
	return append([]byte(nil), file.content...), nil
}

func (p *Portal) CheckedOutBy(ref domain.ContentFileRef) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	file, err := p.lookupFile(ref)
	if err != nil {
		return "", err
	}
	return file.checkedOutBy, nil
}

func (p *Portal) lookupFile(ref domain.ContentFileRef) (*contentFile, error) {
	for _, lib := range p.contentLibraries {
		if lib.name != ref.Library {
			continue
		}
		for _, folder := range p.contentFolders {
			if folder.libraryID != lib.id || folder.name != ref.Folder {
				continue
			}
			for _, file := range p.contentFiles {
				if file.folderID == folder.id && file.name == ref.Name {
					return file, nil
				}
			}
		}
	}
	return nil, fmt.Errorf("fixture file %s: %w", ref, domain.ErrNotFound)
}

func (p *Portal) records(entitySet string) ([]domain.Record, bool) {
	var records []domain.Record
	switch entitySet {
	case domain.EntitySetTemplateLibraries:
		for _, e := range p.templateLibraries {
			records = append(records, domain.Record{"TemplateLibraryId": e.id.String(), "Name": e.name})
		}
	case domain.EntitySetTemplateGroups:
		for _, e := range p.templateGroups {
			records = append(records, domain.Record{"TemplateGroupId": e.id.String(), "TemplateLibraryId": e.libraryID.String(), "Name": e.name})
		}
	case domain.EntitySetTemplates:
		for _, e := range p.templates {
			records = append(records, domain.Record{"TemplateId": e.id.String(), "TemplateGroupId": e.groupID.String(), "Name": e.name})
		}
	case domain.EntitySetTemplateExecutionResults:
		for _, e := range p.results {
			records = append(records, domain.Record{"TemplateExecutionResultId": e.id.String(), "TemplateExecutionId": e.executionID.String()})
		}
	case domain.EntitySetContentLibraries:
		for _, e := range p.contentLibraries {
			records = append(records, domain.Record{"ContentLibraryId": e.id.String(), "Name": e.name})
		}
	case domain.EntitySetContentLibraryFolders:
		for _, e := range p.contentFolders {
			records = append(records, domain.Record{"ContentLibraryFolderId": e.id.String(), "ContentLibraryId": e.libraryID.String(), "Name": e.name})
		}
	case domain.EntitySetContentLibraryFiles:
		for _, e := range p.contentFiles {
			records = append(records, domain.Record{
				"ContentLibraryFileId":         e.id.String(),
				"ContentLibraryId":             e.libraryID.String(),
				"ParentContentLibraryFolderId": e.folderID.String(),
				"Name":                         e.name,
				"IsCheckedOut":                 e.checkedOutBy != "",
				"CheckedOutBy":                 e.checkedOutBy,
			})
		}
	default:
		return nil, false
	}
	return records, true
}

func matches(record domain.Record, filter domain.Filter) bool {
	for _, term := range filter.Terms {
		value, ok := record[term.Field]
		if !ok || fmt.Sprint(value) != fmt.Sprint(term.Value) {
			return false
		}
	}
	return true
}

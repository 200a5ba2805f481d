package application

import (
	"context"
	"fmt"
	"io"

	"github.com/bnema/xpertdoc-portal-cli/internal/domain"
	"github.com/bnema/xpertdoc-portal-cli/internal/ports"
	"github.com/sirupsen/logrus"
)

// Workflow sequences the portal calls of the sample: template execution,
// content lookup and the checkout/check-in cycle. Every call is awaited
// before the next one starts and nothing is retried.
type Workflow struct {
	connector ports.Connector
	policy    MatchPolicy
	log       logrus.FieldLogger
}

type WorkflowOption func(*Workflow)

func WithMatchPolicy(policy MatchPolicy) WorkflowOption {
	return func(w *Workflow) {
		w.policy = policy
	}
}

func WithLogger(log logrus.FieldLogger) WorkflowOption {
	return func(w *Workflow) {
		w.log = log
	}
}

func NewWorkflow(connector ports.Connector, opts ...WorkflowOption) *Workflow {
	discard := logrus.New()
	discard.SetOutput(io.Discard)

	w := &Workflow{
		connector: connector,
		policy:    MatchFirst,
		log:       discard,
	}
	for _, opt := range opts {
		opt(w)
	}

	return w
}

func (w *Workflow) ExecuteTemplate(ctx context.Context, session domain.Session, ref domain.TemplateRef, payload string) (domain.TemplateExecutionResult, error) {
	portal, err := w.connect(session)
	if err != nil {
		return domain.TemplateExecutionResult{}, err
	}

	return w.executeTemplate(ctx, portal, ref, payload)
}

func (w *Workflow) FindFile(ctx context.Context, session domain.Session, ref domain.ContentFileRef) (domain.ContentFile, []byte, error) {
	portal, err := w.connect(session)
	if err != nil {
		return domain.ContentFile{}, nil, err
	}

	return w.findFile(ctx, portal, ref)
}

func (w *Workflow) CheckOut(ctx context.Context, session domain.Session, file domain.ContentFile) error {
	portal, err := w.connect(session)
	if err != nil {
		return err
	}

	return w.checkOut(ctx, portal, file)
}

func (w *Workflow) CheckIn(ctx context.Context, session domain.Session, file domain.ContentFile, content []byte) error {
	portal, err := w.connect(session)
	if err != nil {
		return err
	}

	return w.checkIn(ctx, portal, file, content)
}

// Run performs the whole sample against one connection: execute the
// template, locate the file, check it out and check the new content in.
func (w *Workflow) Run(ctx context.Context, session domain.Session, cmd RunCommand) (RunReport, error) {
	portal, err := w.connect(session)
	if err != nil {
		return RunReport{}, err
	}

	report := RunReport{Session: session}

	report.Execution, err = w.executeTemplate(ctx, portal, cmd.Template, cmd.Payload)
	if err != nil {
		return report, err
	}

	report.File, report.OriginalContent, err = w.findFile(ctx, portal, cmd.File)
	if err != nil {
		return report, err
	}

	if err := w.checkOut(ctx, portal, report.File); err != nil {
		return report, err
	}
	// Ambient sessions leave the holder empty: the OS identity is not known here.
	report.File.CheckedOut = true
	report.File.CheckedOutBy = session.Credentials.Username

	if err := w.checkIn(ctx, portal, report.File, cmd.CheckInContent); err != nil {
		return report, err
	}
	report.File.CheckedOut = false
	report.File.CheckedOutBy = ""
	report.CheckedInBytes = len(cmd.CheckInContent)

	return report, nil
}

func (w *Workflow) connect(session domain.Session) (ports.Portal, error) {
	portal, err := w.connector.Connect(session)
	if err != nil {
		return nil, fmt.Errorf("connect to portal %s: %w", session.BaseURL, err)
	}
	return portal, nil
}

func (w *Workflow) executeTemplate(ctx context.Context, portal ports.Portal, ref domain.TemplateRef, payload string) (domain.TemplateExecutionResult, error) {
	log := w.log.WithField("template", ref.String())
	result := domain.TemplateExecutionResult{Template: ref}

	library, err := lookupOne[domain.TemplateLibrary](ctx, portal, w.policy, domain.EntitySetTemplateLibraries,
		domain.Eq("Name", ref.Library))
	if err != nil {
		return result, fmt.Errorf("find template library %q: %w", ref.Library, err)
	}

	group, err := lookupOne[domain.TemplateGroup](ctx, portal, w.policy, domain.EntitySetTemplateGroups,
		domain.Eq("TemplateLibraryId", library.ID).And("Name", ref.Group))
	if err != nil {
		return result, fmt.Errorf("find template group %q: %w", ref.Group, err)
	}

	template, err := lookupOne[domain.Template](ctx, portal, w.policy, domain.EntitySetTemplates,
		domain.Eq("TemplateGroupId", group.ID).And("Name", ref.Name))
	if err != nil {
		return result, fmt.Errorf("find template %q: %w", ref.Name, err)
	}

	log.WithField("template_id", template.ID).Info("executing template")
	info, err := portal.Execute(ctx, template.ID, payload, nil, nil)
	if err != nil {
		return result, fmt.Errorf("execute template %s: %w", ref, err)
	}
	result.ExecutionID = info.ExecutionID

	if !info.Success {
		result.Status = domain.ExecutionFailed
		result.FailureReason = info.FailureReason
		log.WithField("reason", info.FailureReason).Warn("template execution failed")
		return result, &domain.RemoteExecutionError{Template: ref, ExecutionID: info.ExecutionID, Reason: info.FailureReason}
	}

	record, err := lookupOne[domain.ExecutionResultRecord](ctx, portal, w.policy, domain.EntitySetTemplateExecutionResults,
		domain.Eq("TemplateExecutionId", info.ExecutionID))
	if err != nil {
		return result, fmt.Errorf("find execution result %s: %w", info.ExecutionID, err)
	}
	result.ResultID = record.ID

	content, err := portal.FetchContent(ctx, domain.EntityRef{Set: domain.EntitySetTemplateExecutionResults, ID: record.ID})
	if err != nil {
		return result, fmt.Errorf("fetch execution result content: %w", err)
	}

	result.Status = domain.ExecutionSucceeded
	result.Content = content
	log.WithField("bytes", len(content)).Info("template executed")

	return result, nil
}

func (w *Workflow) findFile(ctx context.Context, portal ports.Portal, ref domain.ContentFileRef) (domain.ContentFile, []byte, error) {
	library, err := lookupOne[domain.ContentLibrary](ctx, portal, w.policy, domain.EntitySetContentLibraries,
		domain.Eq("Name", ref.Library))
	if err != nil {
		return domain.ContentFile{}, nil, fmt.Errorf("find content library %q: %w", ref.Library, err)
	}

	folder, err := lookupOne[domain.ContentLibraryFolder](ctx, portal, w.policy, domain.EntitySetContentLibraryFolders,
		domain.Eq("ContentLibraryId", library.ID).And("Name", ref.Folder))
	if err != nil {
		return domain.ContentFile{}, nil, fmt.Errorf("find content folder %q: %w", ref.Folder, err)
	}

	file, err := lookupOne[domain.ContentFile](ctx, portal, w.policy, domain.EntitySetContentLibraryFiles,
		domain.Eq("ContentLibraryId", library.ID).And("Name", ref.Name).And("ParentContentLibraryFolderId", folder.ID))
	if err != nil {
		return domain.ContentFile{}, nil, fmt.Errorf("find content file %q: %w", ref.Name, err)
	}

	content, err := portal.FetchContent(ctx, file.Ref())
	if err != nil {
		return file, nil, fmt.Errorf("fetch content of %s: %w", ref, err)
	}

	w.log.WithFields(logrus.Fields{"file": ref.String(), "bytes": len(content), "lock": file.LockState()}).Info("file located")
	return file, content, nil
}

func (w *Workflow) checkOut(ctx context.Context, portal ports.Portal, file domain.ContentFile) error {
	if err := portal.Mutate(ctx, file.Ref(), domain.CheckOutMutation()); err != nil {
		return fmt.Errorf("check out %q: %w", file.Name, err)
	}

	w.log.WithField("file", file.Name).Info("file checked out")
	return nil
}

func (w *Workflow) checkIn(ctx context.Context, portal ports.Portal, file domain.ContentFile, content []byte) error {
	if err := portal.Mutate(ctx, file.Ref(), domain.UpdateContentMutation(content)); err != nil {
		return &domain.CheckInError{File: file, Step: domain.CheckInStepUpdateContent, Err: err}
	}

	if err := portal.Mutate(ctx, file.Ref(), domain.CheckInMutation()); err != nil {
		w.log.WithField("file", file.Name).Warn("content updated but check in failed; file remains checked out")
		return &domain.CheckInError{File: file, Step: domain.CheckInStepRelease, Err: err}
	}

	w.log.WithFields(logrus.Fields{"file": file.Name, "bytes": len(content)}).Info("file checked in")
	return nil
}

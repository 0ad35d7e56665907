package models

import "github.com/maheshrc27/approvals-api/pkg/utils"

type IdeaStatus string

const (
	IdeaStatusDraft           IdeaStatus = "rascunho"
	IdeaStatusPendingApproval IdeaStatus = "ideia_em_aprovacao"
	IdeaStatusInDesign        IdeaStatus = "em_design"
	IdeaStatusNeedsChanges    IdeaStatus = "ajustes"
	IdeaStatusRejected        IdeaStatus = "reprovada"
	IdeaStatusApproved        IdeaStatus = "aprovada"
	IdeaStatusPublished       IdeaStatus = "publicada"
)

var IdeaStatuses = []IdeaStatus{
	IdeaStatusDraft,
	IdeaStatusPendingApproval,
	IdeaStatusInDesign,
	IdeaStatusNeedsChanges,
	IdeaStatusRejected,
	IdeaStatusApproved,
	IdeaStatusPublished,
}

type PublicationStatus string

const (
	PublicationStatusInDesign        PublicationStatus = "em_design"
	PublicationStatusPendingApproval PublicationStatus = "em_aprovacao"
	PublicationStatusApproved        PublicationStatus = "aprovado"
	PublicationStatusNeedsChanges    PublicationStatus = "ajustes"
	PublicationStatusScheduled       PublicationStatus = "agendado"
	PublicationStatusPublished       PublicationStatus = "publicado"
)

var PublicationStatuses = []PublicationStatus{
	PublicationStatusInDesign,
	PublicationStatusPendingApproval,
	PublicationStatusApproved,
	PublicationStatusNeedsChanges,
	PublicationStatusScheduled,
	PublicationStatusPublished,
}

// Keys are folded with utils.FoldToken.
var ideaStatusAliases = map[string]IdeaStatus{
	"rascunho":                IdeaStatusDraft,
	"draft":                   IdeaStatusDraft,
	"ideia_em_aprovacao":      IdeaStatusPendingApproval,
	"em_aprovacao":            IdeaStatusPendingApproval,
	"aguardando_aprovacao":    IdeaStatusPendingApproval,
	"pendente":                IdeaStatusPendingApproval,
	"pending":                 IdeaStatusPendingApproval,
	"pending_client_approval": IdeaStatusPendingApproval,
	"em_design":               IdeaStatusInDesign,
	"in_design":               IdeaStatusInDesign,
	"design":                  IdeaStatusInDesign,
	"ajustes":                 IdeaStatusNeedsChanges,
	"ajuste":                  IdeaStatusNeedsChanges,
	"ajustar":                 IdeaStatusNeedsChanges,
	"ajuste_solicitado":       IdeaStatusNeedsChanges,
	"em_ajuste":               IdeaStatusNeedsChanges,
	"needs_changes":           IdeaStatusNeedsChanges,
	"reprovada":               IdeaStatusRejected,
	"reprovado":               IdeaStatusRejected,
	"rejeitada":               IdeaStatusRejected,
	"rejected":                IdeaStatusRejected,
	"aprovada":                IdeaStatusApproved,
	"aprovado":                IdeaStatusApproved,
	"ideia_aprovada":          IdeaStatusApproved,
	"approved":                IdeaStatusApproved,
	"publicada":               IdeaStatusPublished,
	"publicado":               IdeaStatusPublished,
	"published":               IdeaStatusPublished,
}

var publicationStatusAliases = map[string]PublicationStatus{
	"em_design":               PublicationStatusInDesign,
	"in_design":               PublicationStatusInDesign,
	"design":                  PublicationStatusInDesign,
	"em_aprovacao":            PublicationStatusPendingApproval,
	"publicacao_em_aprovacao": PublicationStatusPendingApproval,
	"aguardando_aprovacao":    PublicationStatusPendingApproval,
	"pendente":                PublicationStatusPendingApproval,
	"pending_client_approval": PublicationStatusPendingApproval,
	"aprovado":                PublicationStatusApproved,
	"aprovada":                PublicationStatusApproved,
	"approved":                PublicationStatusApproved,
	"ajustes":                 PublicationStatusNeedsChanges,
	"ajuste":                  PublicationStatusNeedsChanges,
	"reprovado":               PublicationStatusNeedsChanges,
	"reprovada":               PublicationStatusNeedsChanges,
	"needs_changes":           PublicationStatusNeedsChanges,
	"agendado":                PublicationStatusScheduled,
	"agendada":                PublicationStatusScheduled,
	"scheduled":               PublicationStatusScheduled,
	"publicado":               PublicationStatusPublished,
	"publicada":               PublicationStatusPublished,
	"postado":                 PublicationStatusPublished,
	"published":               PublicationStatusPublished,
}

// ParseIdeaStatus maps an upstream status string onto the canonical set.
// Anything unrecognised yields fallback; the raw string is never passed on.
func ParseIdeaStatus(raw string, fallback IdeaStatus) IdeaStatus {
	if s, ok := ideaStatusAliases[utils.FoldToken(raw)]; ok {
		return s
	}
	return fallback
}

func ParsePublicationStatus(raw string, fallback PublicationStatus) PublicationStatus {
	if s, ok := publicationStatusAliases[utils.FoldToken(raw)]; ok {
		return s
	}
	return fallback
}

func (s IdeaStatus) Valid() bool {
	return s != "" && ideaStatusAliases[string(s)] == s
}

func (s PublicationStatus) Valid() bool {
	return s != "" && publicationStatusAliases[string(s)] == s
}

// Staff-driven edges. Client decisions use the On* functions below, which
// are unconditional.
var ideaTransitions = map[IdeaStatus][]IdeaStatus{
	IdeaStatusDraft:           {IdeaStatusPendingApproval},
	IdeaStatusPendingApproval: {IdeaStatusInDesign, IdeaStatusNeedsChanges, IdeaStatusRejected},
	IdeaStatusNeedsChanges:    {IdeaStatusPendingApproval},
	IdeaStatusApproved:        {IdeaStatusInDesign},
	IdeaStatusInDesign:        {IdeaStatusPublished},
}

var publicationTransitions = map[PublicationStatus][]PublicationStatus{
	PublicationStatusInDesign:        {PublicationStatusPendingApproval},
	PublicationStatusPendingApproval: {PublicationStatusApproved, PublicationStatusNeedsChanges},
	PublicationStatusNeedsChanges:    {PublicationStatusPendingApproval},
	PublicationStatusApproved:        {PublicationStatusScheduled},
	PublicationStatusScheduled:       {PublicationStatusPublished},
}

func (s IdeaStatus) CanTransitionTo(next IdeaStatus) bool {
	for _, t := range ideaTransitions[s] {
		if t == next {
			return true
		}
	}
	return false
}

func (s PublicationStatus) CanTransitionTo(next PublicationStatus) bool {
	for _, t := range publicationTransitions[s] {
		if t == next {
			return true
		}
	}
	return false
}

// OnClientApprove is the idea status after the client approves.
func OnClientApprove(IdeaStatus) IdeaStatus { return IdeaStatusInDesign }

// OnClientReject is the idea status after the client rejects. The caller
// must make sure a comment was supplied.
func OnClientReject(IdeaStatus) IdeaStatus { return IdeaStatusNeedsChanges }

// OnClientRequestAdjustment lands on the same status as a rejection; the
// two differ only in the bridge action they trigger.
func OnClientRequestAdjustment(IdeaStatus) IdeaStatus { return IdeaStatusNeedsChanges }

func OnApprove(PublicationStatus) PublicationStatus { return PublicationStatusApproved }

// OnReject requires a caller-enforced comment, like OnClientReject.
func OnReject(PublicationStatus) PublicationStatus { return PublicationStatusNeedsChanges }

// ScheduleChecklist must be fully ticked before a publication is scheduled.
type ScheduleChecklist struct {
	MediaReady      bool `json:"midia_pronta"`
	CaptionReviewed bool `json:"legenda_revisada"`
	DateConfirmed   bool `json:"data_confirmada"`
}

func (c ScheduleChecklist) Complete() bool {
	return c.MediaReady && c.CaptionReviewed && c.DateConfirmed
}

// OnSchedule returns the scheduled status when the checklist is complete,
// otherwise current and false.
func OnSchedule(current PublicationStatus, c ScheduleChecklist) (PublicationStatus, bool) {
	if !c.Complete() {
		return current, false
	}
	return PublicationStatusScheduled, true
}

func OnPublish(PublicationStatus) PublicationStatus { return PublicationStatusPublished }

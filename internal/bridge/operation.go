package bridge

import "fmt"

type Resource string

const (
	ResourceIdeas         Resource = "ideias"
	ResourcePublications  Resource = "publicacoes"
	ResourceSocialSummary Resource = "social_resumo"
)

type Action string

const (
	ActionList           Action = "list"
	ActionGet            Action = "get"
	ActionCreate         Action = "create"
	ActionCreateFromIdea Action = "create_from_idea"
	ActionUpdate         Action = "update"
	ActionApprove        Action = "update_aprovado"
	ActionReject         Action = "update_reprovado"
	ActionAdjust         Action = "update_ajustar"
	ActionDelete         Action = "delete"
	ActionDeleteMedia    Action = "delete_midia"
)

// Operation is one resource/action pair understood by the bridge.
type Operation struct {
	Resource Resource
	Action   Action
}

func (o Operation) String() string {
	return fmt.Sprintf("%s/%s", o.Resource, o.Action)
}

var (
	ListIdeas              = Operation{ResourceIdeas, ActionList}
	CreateIdea             = Operation{ResourceIdeas, ActionCreate}
	UpdateIdea             = Operation{ResourceIdeas, ActionUpdate}
	ApproveIdea            = Operation{ResourceIdeas, ActionApprove}
	RejectIdea             = Operation{ResourceIdeas, ActionReject}
	AdjustIdea             = Operation{ResourceIdeas, ActionAdjust}
	DeleteIdea             = Operation{ResourceIdeas, ActionDelete}
	ListPublications       = Operation{ResourcePublications, ActionList}
	CreateFromIdea         = Operation{ResourcePublications, ActionCreateFromIdea}
	UpdatePublication      = Operation{ResourcePublications, ActionUpdate}
	ApprovePublication     = Operation{ResourcePublications, ActionApprove}
	RejectPublication      = Operation{ResourcePublications, ActionReject}
	DeletePublication      = Operation{ResourcePublications, ActionDelete}
	DeletePublicationMedia = Operation{ResourcePublications, ActionDeleteMedia}
	GetSocialSummary       = Operation{ResourceSocialSummary, ActionGet}
)

// Operations is the complete set of calls this service makes.
var Operations = []Operation{
	ListIdeas, CreateIdea, UpdateIdea, ApproveIdea, RejectIdea, AdjustIdea, DeleteIdea,
	ListPublications, CreateFromIdea, UpdatePublication, ApprovePublication, RejectPublication,
	DeletePublication, DeletePublicationMedia,
	GetSocialSummary,
}

var supported = func() map[Operation]struct{} {
	m := make(map[Operation]struct{}, len(Operations))
	for _, op := range Operations {
		m[op] = struct{}{}
	}
	return m
}()

func Supported(op Operation) bool {
	_, ok := supported[op]
	return ok
}

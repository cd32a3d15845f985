package graph

import (
	"context"
	"fmt"

	"github.com/cloudwego/eino/compose"

	"github.com/gongdu300/localy/internal/agent/augment"
	"github.com/gongdu300/localy/internal/agent/classify"
	"github.com/gongdu300/localy/internal/agent/dispatch"
	"github.com/gongdu300/localy/internal/agent/graph/conversations"
	"github.com/gongdu300/localy/internal/agent/graph/nodes"
	"github.com/gongdu300/localy/internal/agent/graph/observers"
	"github.com/gongdu300/localy/internal/agent/itinerary"
	"github.com/gongdu300/localy/internal/agent/model"
	"github.com/gongdu300/localy/internal/agent/persona"
	logx "github.com/gongdu300/localy/pkg/logger"
)

// Runner is a thin wrapper to execute the compiled graph with the public QueryInput.
type Runner interface {
	Invoke(ctx context.Context, in model.QueryInput) (*model.PipelineOutput, error)
}

// Config holds everything needed to compose the full pipeline graph
// end-to-end. This is a convenience layer over GraphConfig that also
// constructs the chat models and messages manager.
type Config struct {
	APIKey           string
	BaseURL          string
	IntentModel      model.IntentModelConfig
	PersonaModel     model.PersonaModelConfig
	Pipeline         model.PipelineConfig
	Conversation     model.ConversationConfig
	ConversationRepo model.ConversationRepository
	ProfileRepo      model.ProfileRepository
	Dispatcher       *dispatch.Dispatcher
	Augmenter        *augment.Augmenter
}

// GraphConfig holds the constructed collaborators the graph wires together.
type GraphConfig struct {
	MessagesManager *conversations.MessagesManager
	ProfileRepo     model.ProfileRepository
	Classifier      *classify.Classifier
	Dispatcher      *dispatch.Dispatcher
	Builder         *itinerary.Builder
	Augmenter       *augment.Augmenter
	Renderer        *persona.Renderer
}

// GraphBuilder handles the construction of the pipeline graph
type GraphBuilder struct {
	config *GraphConfig
	graph  *compose.Graph[model.QueryInput, *model.PipelineOutput]
}

type graphRunner struct {
	runnable compose.Runnable[model.QueryInput, *model.PipelineOutput]
}

func (r *graphRunner) Invoke(ctx context.Context, in model.QueryInput) (*model.PipelineOutput, error) {
	out, err := r.runnable.Invoke(ctx, in, compose.WithCallbacks(observers.NewAllCallbacks()))
	if err != nil {
		return nil, err
	}
	if out == nil {
		return nil, fmt.Errorf("graph produced no output")
	}
	return out, nil
}

// BuildPipelineGraph composes the chat models, messages manager and node
// collaborators, builds the graph, and returns a Runner.
func BuildPipelineGraph(ctx context.Context, cfg Config) (Runner, error) {
	if cfg.ConversationRepo == nil {
		return nil, fmt.Errorf("conversation repo is nil")
	}
	if cfg.Dispatcher == nil {
		return nil, fmt.Errorf("dispatcher is nil")
	}

	cms, err := nodes.NewChatModels(ctx, nodes.ChatModelConfig{
		APIKey:        cfg.APIKey,
		BaseURL:       cfg.BaseURL,
		IntentConfig:  &cfg.IntentModel,
		PersonaConfig: &cfg.PersonaModel,
	})
	if err != nil {
		return nil, err
	}

	mm := conversations.NewMessagesManager(cfg.ConversationRepo, cfg.Conversation)

	runnable, err := BuildGraph(ctx, &GraphConfig{
		MessagesManager: mm,
		ProfileRepo:     cfg.ProfileRepo,
		Classifier:      classify.New(cms.Intent, cms.IntentModelName, &cfg.Pipeline),
		Dispatcher:      cfg.Dispatcher,
		Builder:         itinerary.NewBuilder(),
		Augmenter:       cfg.Augmenter,
		Renderer:        persona.NewRenderer(cms.Persona, cms.PersonaModelName, cms.PersonaEn, cms.PersonaEnModelName),
	})
	if err != nil {
		return nil, err
	}

	logx.Debug().Msg("Pipeline graph built successfully")
	return &graphRunner{runnable: runnable}, nil
}

// BuildGraph constructs and returns the compiled pipeline graph
func BuildGraph(ctx context.Context, config *GraphConfig) (compose.Runnable[model.QueryInput, *model.PipelineOutput], error) {
	if config == nil {
		return nil, fmt.Errorf("graph config is nil")
	}
	if config.MessagesManager == nil {
		return nil, fmt.Errorf("messages manager is nil")
	}
	if config.Classifier == nil || config.Renderer == nil {
		return nil, fmt.Errorf("classifier or renderer is nil")
	}
	if config.Dispatcher == nil || config.Builder == nil || config.Augmenter == nil {
		return nil, fmt.Errorf("lookup pipeline components are not properly initialized")
	}

	builder := &GraphBuilder{
		config: config,
		graph: compose.NewGraph[model.QueryInput, *model.PipelineOutput](
			compose.WithGenLocalState(func(ctx context.Context) *model.TripState {
				return &model.TripState{}
			}),
		),
	}

	builder.addNodes()
	builder.addEdges()

	if err := builder.addBranches(); err != nil {
		return nil, err
	}

	return builder.compile(ctx)
}

// addNodes adds all processing nodes to the graph
func (b *GraphBuilder) addNodes() {
	b.graph.AddLambdaNode(nodes.NodeProfileLoader,
		nodes.NewProfileLoaderNode(b.config.ProfileRepo, b.config.MessagesManager),
		compose.WithStatePreHandler(nodes.NewProfileLoaderPreHandler()),
	)

	b.graph.AddLambdaNode(nodes.NodeIntentClassifier,
		nodes.NewIntentClassifierNode(b.config.Classifier, b.config.MessagesManager),
		compose.WithStatePostHandler(nodes.NewIntentClassifierPostHandler()),
	)

	b.graph.AddLambdaNode(nodes.NodeGeneralChat,
		nodes.NewGeneralChatNode(b.config.Renderer, b.config.MessagesManager),
		compose.WithStatePostHandler(nodes.NewResponsePostHandler(b.config.MessagesManager)),
	)

	b.graph.AddLambdaNode(nodes.NodeDispatcher,
		nodes.NewDispatcherNode(b.config.Dispatcher),
		compose.WithStatePostHandler(nodes.NewDispatcherPostHandler()),
	)

	b.graph.AddLambdaNode(nodes.NodeItineraryBuilder,
		nodes.NewItineraryBuilderNode(b.config.Builder),
		compose.WithStatePostHandler(nodes.NewItineraryBuilderPostHandler()),
	)

	b.graph.AddLambdaNode(nodes.NodeAugmenter,
		nodes.NewAugmenterNode(b.config.Augmenter),
		compose.WithStatePostHandler(nodes.NewAugmenterPostHandler()),
	)

	b.graph.AddLambdaNode(nodes.NodePersonaTransform,
		nodes.NewPersonaTransformNode(b.config.Renderer),
		compose.WithStatePostHandler(nodes.NewResponsePostHandler(b.config.MessagesManager)),
	)
}

// addEdges creates the main flow connections between nodes
func (b *GraphBuilder) addEdges() {
	edges := [][2]string{
		{compose.START, nodes.NodeProfileLoader},
		{nodes.NodeProfileLoader, nodes.NodeIntentClassifier},
		{nodes.NodeDispatcher, nodes.NodeItineraryBuilder},
		{nodes.NodeItineraryBuilder, nodes.NodeAugmenter},
		{nodes.NodeAugmenter, nodes.NodePersonaTransform},
		{nodes.NodeGeneralChat, compose.END},
		{nodes.NodePersonaTransform, compose.END},
	}

	for _, edge := range edges {
		b.graph.AddEdge(edge[0], edge[1])
	}
}

// addBranches creates conditional routing branches
func (b *GraphBuilder) addBranches() error {
	routeBranch := compose.NewGraphBranch(
		nodes.NewChatRouteCondition(),
		map[string]bool{
			nodes.NodeGeneralChat: true,
			nodes.NodeDispatcher:  true,
		},
	)
	if err := b.graph.AddBranch(nodes.NodeIntentClassifier, routeBranch); err != nil {
		logx.Error().Err(err).Msg("Error adding chat route branch")
		return fmt.Errorf("error adding chat route branch: %w", err)
	}
	return nil
}

// compile finalizes and compiles the graph
func (b *GraphBuilder) compile(ctx context.Context) (compose.Runnable[model.QueryInput, *model.PipelineOutput], error) {
	runnable, err := b.graph.Compile(ctx, compose.WithMaxRunSteps(20))
	if err != nil {
		logx.Error().Err(err).Msg("Error compiling graph")
		return nil, fmt.Errorf("error compiling graph: %w", err)
	}

	logx.Debug().Msg("Graph compiled successfully")
	return runnable, nil
}

package nodes

import (
	"context"
	"fmt"

	"github.com/cloudwego/eino/compose"
	"github.com/cloudwego/eino/schema"

	"github.com/gongdu300/localy/internal/agent/augment"
	"github.com/gongdu300/localy/internal/agent/classify"
	"github.com/gongdu300/localy/internal/agent/dispatch"
	"github.com/gongdu300/localy/internal/agent/graph/conversations"
	"github.com/gongdu300/localy/internal/agent/itinerary"
	"github.com/gongdu300/localy/internal/agent/model"
	"github.com/gongdu300/localy/internal/agent/persona"
	"github.com/gongdu300/localy/pkg/langdetect"
	logx "github.com/gongdu300/localy/pkg/logger"
)

// Node names used across graph construction.
const (
	NodeProfileLoader    = "ProfileLoader"
	NodeIntentClassifier = "IntentClassifier"
	NodeGeneralChat      = "GeneralChat"
	NodeDispatcher       = "LookupDispatcher"
	NodeItineraryBuilder = "ItineraryBuilder"
	NodeAugmenter        = "Augmenter"
	NodePersonaTransform = "PersonaTransform"
)

// NewProfileLoaderPreHandler seeds the per-invocation state from the raw input.
func NewProfileLoaderPreHandler() func(context.Context, model.QueryInput, *model.TripState) (model.QueryInput, error) {
	return func(ctx context.Context, in model.QueryInput, s *model.TripState) (model.QueryInput, error) {
		s.ConversationID = in.ConversationID
		s.UserInput = in.Query
		s.Character = in.Character
		s.Language = langdetect.Detect(in.Query)
		s.TotalCostUSD = 0
		return in, nil
	}
}

// NewProfileLoaderNode records the user's turn and loads the stored travel
// persona. Both are best-effort: a missing profile or an unreachable store
// never blocks the pipeline.
func NewProfileLoaderNode(
	profiles model.ProfileRepository,
	mm *conversations.MessagesManager,
) *compose.Lambda {
	return compose.InvokableLambda(func(ctx context.Context, input model.QueryInput) (model.QueryInput, error) {
		if err := mm.SeedHistory(ctx, input.ConversationID, input.History); err != nil {
			logx.Warn().Err(err).
				Str("conversation_id", input.ConversationID).
				Msg("could not seed caller-supplied history")
		}

		if err := mm.RecordUserMessage(ctx, input.ConversationID, input.Query); err != nil {
			logx.Warn().Err(err).
				Str("conversation_id", input.ConversationID).
				Msg("could not persist user message, continuing without history")
		}

		if profiles != nil {
			p, err := profiles.Get(ctx, input.ConversationID)
			if err != nil {
				logx.Debug().Err(err).
					Str("conversation_id", input.ConversationID).
					Msg("no travel persona loaded")
			} else {
				stateErr := compose.ProcessState(ctx, func(_ context.Context, s *model.TripState) error {
					s.Persona = p
					return nil
				})
				if stateErr != nil {
					return input, fmt.Errorf("failed to access state: %w", stateErr)
				}
			}
		}

		return input, nil
	})
}

// NewIntentClassifierNode classifies the turn against its recent context.
func NewIntentClassifierNode(
	classifier *classify.Classifier,
	mm *conversations.MessagesManager,
) *compose.Lambda {
	return compose.InvokableLambda(func(ctx context.Context, input model.QueryInput) (model.Intent, error) {
		conversationCtx, err := mm.RecentContext(ctx, input.ConversationID, input.Query)
		if err != nil {
			logx.Warn().Err(err).Msg("could not load conversation context, classifying raw input")
			conversationCtx = ""
		}

		intent, cost := classifier.Classify(ctx, input.Query, conversationCtx)

		if cost > 0 {
			if err := addCost(ctx, cost); err != nil {
				return model.Intent{}, err
			}
		}
		return *intent, nil
	})
}

// NewIntentClassifierPostHandler stores the classification in state.
func NewIntentClassifierPostHandler() func(context.Context, model.Intent, *model.TripState) (model.Intent, error) {
	return func(ctx context.Context, out model.Intent, s *model.TripState) (model.Intent, error) {
		s.Intent = &out
		logx.Debug().
			Str("conversation_id", s.ConversationID).
			Str("intent", string(out.Label)).
			Str("destination", out.Destination).
			Str("language", s.Language).
			Msg("turn classified")
		return out, nil
	}
}

// NewChatRouteCondition routes chat turns straight to the conversational
// node; everything else enters the lookup pipeline.
func NewChatRouteCondition() func(context.Context, model.Intent) (string, error) {
	return func(ctx context.Context, intent model.Intent) (string, error) {
		if intent.IsChat() {
			return NodeGeneralChat, nil
		}
		return NodeDispatcher, nil
	}
}

// NewGeneralChatNode answers a conversational turn in the selected
// character's voice.
func NewGeneralChatNode(
	renderer *persona.Renderer,
	mm *conversations.MessagesManager,
) *compose.Lambda {
	return compose.InvokableLambda(func(ctx context.Context, input model.Intent) (*model.PipelineOutput, error) {
		var conversationID, character, language, userInput string
		err := compose.ProcessState(ctx, func(_ context.Context, s *model.TripState) error {
			conversationID, character, language, userInput = s.ConversationID, s.Character, s.Language, s.UserInput
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("failed to access state: %w", err)
		}

		history, err := mm.RecentMessages(ctx, conversationID)
		if err != nil {
			logx.Warn().Err(err).Msg("could not load chat history, answering without it")
			history = nil
		}
		// The current turn was already persisted; don't send it twice.
		if n := len(history); n > 0 && history[n-1] != nil &&
			history[n-1].Role == schema.User && history[n-1].Content == userInput {
			history = history[:n-1]
		}

		response, cost := renderer.Chat(ctx, character, language, history, userInput)
		if cost > 0 {
			if err := addCost(ctx, cost); err != nil {
				return nil, err
			}
		}

		return &model.PipelineOutput{
			Response: response,
			Intent:   string(model.LabelChat),
			Language: language,
		}, nil
	})
}

// NewDispatcherNode fans the intent out to the lookup providers.
func NewDispatcherNode(d *dispatch.Dispatcher) *compose.Lambda {
	return compose.InvokableLambda(func(ctx context.Context, input model.Intent) (*model.SearchResults, error) {
		var userInput string
		err := compose.ProcessState(ctx, func(_ context.Context, s *model.TripState) error {
			userInput = s.UserInput
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("failed to access state: %w", err)
		}
		return d.Dispatch(ctx, &input, userInput), nil
	})
}

// NewDispatcherPostHandler stores the lookup results in state.
func NewDispatcherPostHandler() func(context.Context, *model.SearchResults, *model.TripState) (*model.SearchResults, error) {
	return func(ctx context.Context, out *model.SearchResults, s *model.TripState) (*model.SearchResults, error) {
		s.Results = out
		logx.Debug().
			Str("conversation_id", s.ConversationID).
			Int("restaurants", len(out.Restaurants)).
			Int("desserts", len(out.Desserts)).
			Int("landmarks", len(out.Landmarks)).
			Int("accommodations", len(out.Accommodations)).
			Int("shopping", len(out.Shopping)).
			Msg("lookups dispatched")
		return out, nil
	}
}

// NewItineraryBuilderNode aggregates the lookup results into the response
// payload.
func NewItineraryBuilderNode(builder *itinerary.Builder) *compose.Lambda {
	return compose.InvokableLambda(func(ctx context.Context, input *model.SearchResults) (*model.Aggregate, error) {
		var intent *model.Intent
		err := compose.ProcessState(ctx, func(_ context.Context, s *model.TripState) error {
			intent = s.Intent
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("failed to access state: %w", err)
		}
		if intent == nil {
			return nil, fmt.Errorf("missing intent in state")
		}
		return builder.Build(intent, input), nil
	})
}

// NewItineraryBuilderPostHandler stores the aggregate in state.
func NewItineraryBuilderPostHandler() func(context.Context, *model.Aggregate, *model.TripState) (*model.Aggregate, error) {
	return func(ctx context.Context, out *model.Aggregate, s *model.TripState) (*model.Aggregate, error) {
		s.Plans = out
		return out, nil
	}
}

// NewAugmenterNode enriches plan aggregates with congestion and budget data.
func NewAugmenterNode(a *augment.Augmenter) *compose.Lambda {
	return compose.InvokableLambda(func(ctx context.Context, input *model.Aggregate) (*model.Aggregate, error) {
		var intent *model.Intent
		var results *model.SearchResults
		err := compose.ProcessState(ctx, func(_ context.Context, s *model.TripState) error {
			intent, results = s.Intent, s.Results
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("failed to access state: %w", err)
		}
		if intent == nil {
			return nil, fmt.Errorf("missing intent in state")
		}
		return a.Augment(ctx, intent, results, input), nil
	})
}

// NewAugmenterPostHandler refreshes the stored aggregate after enrichment.
func NewAugmenterPostHandler() func(context.Context, *model.Aggregate, *model.TripState) (*model.Aggregate, error) {
	return func(ctx context.Context, out *model.Aggregate, s *model.TripState) (*model.Aggregate, error) {
		s.Plans = out
		return out, nil
	}
}

// NewPersonaTransformNode renders the aggregate in the selected character's
// voice and shapes the final output.
func NewPersonaTransformNode(renderer *persona.Renderer) *compose.Lambda {
	return compose.InvokableLambda(func(ctx context.Context, input *model.Aggregate) (*model.PipelineOutput, error) {
		var intent *model.Intent
		var character, language string
		err := compose.ProcessState(ctx, func(_ context.Context, s *model.TripState) error {
			intent, character, language = s.Intent, s.Character, s.Language
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("failed to access state: %w", err)
		}
		if intent == nil {
			return nil, fmt.Errorf("missing intent in state")
		}

		response, cost := renderer.Render(ctx, character, language, input)
		if cost > 0 {
			if err := addCost(ctx, cost); err != nil {
				return nil, err
			}
		}

		return &model.PipelineOutput{
			Response: response,
			Intent:   string(intent.Label),
			Language: language,
			Data:     input,
		}, nil
	})
}

// NewResponsePostHandler persists the assistant's turn and finalizes state.
// It backs both terminal nodes (general chat and persona transform).
func NewResponsePostHandler(mm *conversations.MessagesManager) func(context.Context, *model.PipelineOutput, *model.TripState) (*model.PipelineOutput, error) {
	return func(ctx context.Context, out *model.PipelineOutput, s *model.TripState) (*model.PipelineOutput, error) {
		if out == nil {
			return nil, fmt.Errorf("nil pipeline output")
		}
		s.FinalResponse = out.Response
		s.Messages = append(s.Messages, schema.AssistantMessage(out.Response, nil))

		if err := mm.SaveResponse(ctx, s.ConversationID, out.Response); err != nil {
			logx.Error().Err(err).
				Str("conversation_id", s.ConversationID).
				Msg("error saving assistant response")
		}

		logx.Debug().
			Str("conversation_id", s.ConversationID).
			Str("intent", out.Intent).
			Float64("total_cost_usd", s.TotalCostUSD).
			Msg("response ready")
		return out, nil
	}
}

// addCost accumulates LLM spend for the running query.
func addCost(ctx context.Context, cost float64) error {
	err := compose.ProcessState(ctx, func(_ context.Context, s *model.TripState) error {
		s.TotalCostUSD += cost
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to access state: %w", err)
	}
	return nil
}

package agent

import (
	"context"
	"fmt"
	"log"

	"google.golang.org/genai"
)

// maxRounds bounds the function calls an expert can chain before answering.
const maxRounds = 8

// Expert is a chat with a model specialized in one part of the user's questions.
type Expert struct {
	Name        string                       `json:"name"`
	Description string                       `json:"description"`
	ModelName   string                       `json:"model_name"`
	Config      *genai.GenerateContentConfig `json:"config"`
	Library     Library
	chat        *genai.Chat
}

// Start creates the expert's chat session.
func (e *Expert) Start(ctx context.Context, client *genai.Client) error {
	chat, err := client.Chats.Create(ctx, e.ModelName, e.Config, nil)
	if err != nil {
		return err
	}
	e.chat = chat
	return nil
}

// Ask sends parts to the expert and returns its answer.
//
// Function calls in the expert's replies are run and their responses sent
// back until the expert answers with text.
func (e *Expert) Ask(ctx context.Context, parts ...*genai.Part) (*genai.Content, error) {
	for range maxRounds {
		resp, err := e.chat.Send(ctx, parts...)
		if err != nil {
			return nil, err
		}
		if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
			return nil, fmt.Errorf("no response from expert %s", e.Name)
		}
		content := resp.Candidates[0].Content
		calls := functionCalls(content)
		if len(calls) == 0 {
			return content, nil
		}
		if parts, err = e.call(ctx, calls); err != nil {
			return nil, err
		}
	}
	return nil, fmt.Errorf("expert %s made more than %d rounds of function calls", e.Name, maxRounds)
}

// functionCalls returns the function calls of content.
func functionCalls(content *genai.Content) []*genai.FunctionCall {
	var calls []*genai.FunctionCall
	for _, p := range content.Parts {
		if p.FunctionCall != nil {
			calls = append(calls, p.FunctionCall)
		}
	}
	return calls
}

// call runs every call with the expert's library, and returns the responses in order.
func (e *Expert) call(ctx context.Context, calls []*genai.FunctionCall) ([]*genai.Part, error) {
	if e.Library == nil {
		return nil, fmt.Errorf("expert %s has no function to call", e.Name)
	}
	parts := make([]*genai.Part, 0, len(calls))
	for _, c := range calls {
		log.Printf("expert=%q call=%q args=%v", e.Name, c.Name, c.Args)
		parts = append(parts, &genai.Part{FunctionResponse: e.Library(ctx, c)})
	}
	return parts, nil
}

// Declaration returns the function declaration to ask this expert.
func (e *Expert) Declaration() *genai.FunctionDeclaration {
	return &genai.FunctionDeclaration{
		Name:        e.Name,
		Description: e.Description,
		Parameters: &genai.Schema{
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"question": {
					Type:        genai.TypeString,
					Description: "The question, naming the tickers and the dates it is about.",
				},
			},
			Required: []string{"question"},
		},
		Response: &genai.Schema{
			Type:        genai.TypeString,
			Description: "The expert's answer.",
		},
	}
}

// Call asks the expert the question of args.
func (e *Expert) Call(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
	question, ok := args["question"].(string)
	if !ok {
		return errorResponse(id, e.Name, fmt.Errorf("argument 'question' is a %T, expected string", args["question"]))
	}

	answer, err := e.Ask(ctx, &genai.Part{Text: question})
	if err != nil {
		return errorResponse(id, e.Name, fmt.Errorf("%s could not answer: %w", e.Name, err))
	}

	r := text(answer)
	log.Printf("expert=%q question=%q answer=%q", e.Name, question, r)
	return outputResponse(id, e.Name, r)
}

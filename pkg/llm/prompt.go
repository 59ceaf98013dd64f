package llm

import (
	"fmt"
	"strings"
)

type PromptStyle string

const (
	StylePet PromptStyle = "pet"
	StyleDog PromptStyle = "dog"
)

const petTemplate = "Translate this pet sound classification into a funny human-like short sentence: %s"

const dogTemplate = "You are a dog. Translate this dog sound classification into a short, funny sentence a human would say, " +
	"written in the first person as if the dog were speaking: %s"

func ParseStyle(s string) (PromptStyle, error) {
	switch PromptStyle(strings.ToLower(strings.TrimSpace(s))) {
	case "", StylePet:
		return StylePet, nil
	case StyleDog:
		return StyleDog, nil
	default:
		return "", fmt.Errorf("unknown prompt style %q", s)
	}
}

// BuildPrompt interpolates the classification verbatim into the style's template.
func BuildPrompt(style PromptStyle, classification string) string {
	if style == StyleDog {
		return fmt.Sprintf(dogTemplate, classification)
	}
	return fmt.Sprintf(petTemplate, classification)
}

func cleanCompletion(content string) string {
	content = strings.TrimSpace(content)
	content = strings.TrimPrefix(content, "```text")
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimSuffix(content, "```")
	content = strings.TrimSpace(content)

	// Models sometimes quote the whole sentence. Only a single quoted span is
	// unwrapped; "a" and "b" keeps its quotes.
	if len(content) >= 2 && strings.Count(content, `"`) == 2 &&
		strings.HasPrefix(content, `"`) && strings.HasSuffix(content, `"`) {
		content = strings.TrimSpace(content[1 : len(content)-1])
	}
	return content
}

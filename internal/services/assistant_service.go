package services

import (
	"context"
	"strings"
	"unicode/utf8"

	"maboutique/internal/domain"
)

const (
	// CandidateLimit bounds the product context handed to the generator.
	CandidateLimit = 10
	fallbackCount  = 5
	minTokenRunes  = 3

	// OfflineReply is shown whenever generation fails or no API key is set.
	OfflineReply = "Désolé, je suis hors ligne pour le moment."
)

// Generator is the external text-generation collaborator: one blocking call,
// unspecified latency.
type Generator interface {
	Generate(ctx context.Context, systemPrompt, userQuery string) (string, error)
}

// SelectCandidates picks a bounded candidate subset for the generation
// prompt using lexical containment only. A product matches if its name is a
// substring of the query, its category name is a substring of the query, or
// any query token of at least three runes is a substring of its name — all
// case-insensitive. Matches keep catalog iteration order and are truncated
// to limit. When nothing matches, the first five products are returned as an
// unranked default; an empty catalog yields an empty list.
func SelectCandidates(query string, catalog []domain.Product, limit int) []domain.Product {
	if limit <= 0 {
		limit = CandidateLimit
	}
	q := strings.ToLower(query)

	var tokens []string
	for _, tok := range strings.Fields(q) {
		if utf8.RuneCountInString(tok) >= minTokenRunes {
			tokens = append(tokens, tok)
		}
	}

	matches := func(p domain.Product) bool {
		name := strings.ToLower(p.Name)
		if name != "" && strings.Contains(q, name) {
			return true
		}
		if cat := strings.ToLower(p.CategoryName()); cat != "" && strings.Contains(q, cat) {
			return true
		}
		for _, tok := range tokens {
			if strings.Contains(name, tok) {
				return true
			}
		}
		return false
	}

	var out []domain.Product
	for _, p := range catalog {
		if matches(p) {
			out = append(out, p)
			if len(out) == limit {
				return out
			}
		}
	}
	if len(out) > 0 {
		return out
	}
	if len(catalog) > fallbackCount {
		return catalog[:fallbackCount]
	}
	return catalog
}

// AssistantService runs the retrieval step over the (possibly cached)
// listing and hands the selected subset plus the raw question to the
// generator.
type AssistantService struct {
	Gen Generator
}

func NewAssistantService(gen Generator) *AssistantService {
	return &AssistantService{Gen: gen}
}

// Answer is the assistant's reply plus the candidate products that were fed
// to the prompt, for display alongside the text.
type Answer struct {
	Text        string
	Suggestions []domain.Product
}

// Ask never fails: generation errors degrade to an apology reply.
func (s *AssistantService) Ask(ctx context.Context, question string, catalog []domain.Product) Answer {
	candidates := SelectCandidates(question, catalog, CandidateLimit)

	var b strings.Builder
	if len(candidates) > 0 {
		b.WriteString("VOICI LES ARTICLES DISPONIBLES EN STOCK :\n")
		for _, p := range candidates {
			b.WriteString("- Titre: " + p.Name + ", Prix: " + p.Price.StringFixed(2) + "DH, Desc: " + p.Description + "\n")
		}
	} else {
		b.WriteString("AUCUN ARTICLE TROUVÉ DANS LE STOCK CORRESPONDANT À LA DEMANDE.\n")
	}

	system := "Tu es un vendeur expert chez 'MaBoutique'. " +
		"Utilise UNIQUEMENT les informations fournies dans la liste 'VOICI LES ARTICLES DISPONIBLES' pour répondre. " +
		"Si l'article n'est pas dans la liste, dis poliment que nous ne l'avons pas. " +
		"Ne propose jamais d'articles qui ne sont pas dans la liste fournie. " +
		"Sois bref et commercial.\n\n" + b.String()

	text, err := s.Gen.Generate(ctx, system, question)
	if err != nil || text == "" {
		return Answer{Text: OfflineReply, Suggestions: candidates}
	}
	return Answer{Text: text, Suggestions: candidates}
}

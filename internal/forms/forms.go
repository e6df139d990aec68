// Package forms valida os formulários antes de qualquer chamada de rede.
package forms

import (
	"strings"

	"github.com/radieske/paris-web-client/internal/api/dto"
)

// Limites de opções por aposta
const (
	MinOptions = 2
	MaxOptions = 6
)

// DefaultLeague é a ligue aplicada quando o formulário não escolhe nenhuma
const DefaultLeague = "general"

// Mensagens de validação exibidas ao usuário
const (
	MsgFieldsRequired      = "Veuillez remplir tous les champs"
	MsgPasswordMismatch    = "Les mots de passe ne correspondent pas"
	MsgTitleRequired       = "Le titre est obligatoire"
	MsgDescriptionRequired = "La description est obligatoire"
	MsgTooFewOptions       = "Il faut au moins 2 options valides"
	MsgTooManyOptions      = "Maximum 6 options"
	MsgDuplicateOptions    = "Les options doivent être uniques"
	MsgSelectOption        = "Veuillez sélectionner une option"
)

// PredefinedLeagues são as ligues oferecidas na criação de aposta
var PredefinedLeagues = []string{
	"general", "football", "tennis", "basketball",
	"politique", "entertainment", "esport", "autre",
}

// RankingLeagues são os filtros do classement; "global" não envia league
var RankingLeagues = []string{
	"global", "football", "tennis", "basketball",
	"politique", "entertainment", "esport",
}

// Error é um erro de validação ligado a um campo do formulário
type Error struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *Error) Error() string { return e.Message }

func fail(field, msg string) *Error { return &Error{Field: field, Message: msg} }

// Login exige os dois campos preenchidos
func Login(login, password string) (dto.LoginRequest, *Error) {
	if login == "" || password == "" {
		return dto.LoginRequest{}, fail("login", MsgFieldsRequired)
	}
	return dto.LoginRequest{Login: login, Password: password}, nil
}

// Register exige os dois campos e, quando informada, a confirmação igual à senha
func Register(login, password, confirm string) (dto.RegisterRequest, *Error) {
	if login == "" || password == "" {
		return dto.RegisterRequest{}, fail("login", MsgFieldsRequired)
	}
	if confirm != "" && confirm != password {
		return dto.RegisterRequest{}, fail("confirm_password", MsgPasswordMismatch)
	}
	return dto.RegisterRequest{Login: login, Password: password}, nil
}

// CreateBet é o formulário de criação, como digitado
type CreateBet struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	League      string   `json:"league"`
	Options     []string `json:"options"`
}

// Validate normaliza o formulário no payload enviado ao backend.
// Opções são aparadas, vazias descartadas e comparadas sem caixa.
func (f CreateBet) Validate() (dto.CreateBetRequest, *Error) {
	title := strings.TrimSpace(f.Title)
	if title == "" {
		return dto.CreateBetRequest{}, fail("title", MsgTitleRequired)
	}
	desc := strings.TrimSpace(f.Description)
	if desc == "" {
		return dto.CreateBetRequest{}, fail("description", MsgDescriptionRequired)
	}

	options := CleanOptions(f.Options)
	if len(options) < MinOptions {
		return dto.CreateBetRequest{}, fail("options", MsgTooFewOptions)
	}
	if len(options) > MaxOptions {
		return dto.CreateBetRequest{}, fail("options", MsgTooManyOptions)
	}
	seen := make(map[string]struct{}, len(options))
	for _, o := range options {
		k := strings.ToLower(o)
		if _, dup := seen[k]; dup {
			return dto.CreateBetRequest{}, fail("options", MsgDuplicateOptions)
		}
		seen[k] = struct{}{}
	}

	league := strings.TrimSpace(f.League)
	if league == "" {
		league = DefaultLeague
	}

	return dto.CreateBetRequest{
		Title:       title,
		Description: desc,
		League:      league,
		Options:     options,
	}, nil
}

// CleanOptions apara as opções e descarta as vazias, mantendo a ordem
func CleanOptions(in []string) []string {
	out := make([]string, 0, len(in))
	for _, o := range in {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}

// Vote exige uma opção selecionada dentro do intervalo [0, n)
func Vote(selected *int, n int) (dto.VoteRequest, *Error) {
	if selected == nil || *selected < 0 || *selected >= n {
		return dto.VoteRequest{}, fail("option_index", MsgSelectOption)
	}
	return dto.VoteRequest{OptionIndex: *selected}, nil
}

// Resolve aplica a mesma regra de seleção para a opção vencedora
func Resolve(winning *int, n int) (dto.ResolveRequest, *Error) {
	if winning == nil || *winning < 0 || *winning >= n {
		return dto.ResolveRequest{}, fail("winning_option_index", MsgSelectOption)
	}
	return dto.ResolveRequest{WinningOptionIndex: *winning}, nil
}

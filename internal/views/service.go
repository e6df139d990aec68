// Package views monta os modelos de cada tela a partir da sessão e da API.
// Toda falha vira uma mensagem no modelo; nenhuma tela fica num estado sem saída.
package views

import (
	"context"

	"go.uber.org/zap"

	"github.com/radieske/paris-web-client/internal/activity/producer"
	"github.com/radieske/paris-web-client/internal/api/dto"
	"github.com/radieske/paris-web-client/internal/session"
)

// Mensagens das telas
const (
	MsgLoadHome      = "Erreur lors du chargement des données"
	MsgLoadBets      = "Erreur lors du chargement des paris"
	MsgLoadBet       = "Erreur lors du chargement du pari"
	MsgLoadRanking   = "Erreur lors du chargement du classement"
	MsgLoadProfile   = "Erreur lors du chargement du profil"
	MsgCreateFailed  = "Erreur lors de la création du pari"
	MsgVoteFailed    = "Erreur lors du vote"
	MsgResolveFailed = "Erreur lors de la résolution"
	MsgAlreadyVoted  = "Vous avez déjà voté pour ce pari"
	MsgBetClosed     = "Ce pari est terminé"
	MsgNotCreator    = "Seul le créateur peut résoudre ce pari"

	MsgCreated  = "Pari créé avec succès !"
	MsgVoted    = "Vote enregistré avec succès !"
	MsgResolved = "Pari résolu avec succès !"

	MsgNoBets      = "Aucun pari disponible"
	MsgNoMatch     = "Aucun pari ne correspond à vos critères"
	MsgNoRanking   = "Aucun utilisateur dans le classement"
	MsgNoBadges    = "Pas encore de badges obtenus"
	MsgNoCreations = "Vous n'avez pas encore créé de paris"
)

// Backend é o subconjunto do cliente da API usado pelas telas
type Backend interface {
	GetProfile(ctx context.Context, token string) (dto.User, error)
	GetBets(ctx context.Context) ([]dto.Bet, error)
	CreateBet(ctx context.Context, req dto.CreateBetRequest, token string) (dto.CreateBetResponse, error)
	GetBetDetails(ctx context.Context, betID string) (dto.Bet, error)
	VoteBet(ctx context.Context, betID string, req dto.VoteRequest, token string) (dto.Ack, error)
	ResolveBet(ctx context.Context, betID string, req dto.ResolveRequest, token string) (dto.Ack, error)
	GetRanking(ctx context.Context, league string) (dto.RankingResponse, error)
}

// SessionView é o que as telas precisam da sessão
type SessionView interface {
	Snapshot() session.Session
	HandleAPIError(ctx context.Context, token string, err error) bool
}

type Service struct {
	api  Backend
	sess SessionView
	pub  producer.Publisher
	log  *zap.Logger
}

func NewService(b Backend, s SessionView, pub producer.Publisher, log *zap.Logger) *Service {
	if pub == nil {
		pub = producer.Noop{}
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{api: b, sess: s, pub: pub, log: log}
}

// identity devolve token e login da sessão atual
func (s *Service) identity() (token, login string) {
	snap := s.sess.Snapshot()
	if snap.User != nil {
		login = snap.User.Login
	}
	return snap.Token, login
}

// authFailed registra a falha de uma chamada feita com token e repassa a rejeição à sessão
func (s *Service) authFailed(ctx context.Context, op, token string, err error) {
	invalidated := s.sess.HandleAPIError(ctx, token, err)
	s.log.Warn("backend call failed",
		zap.String("op", op), zap.Bool("session_invalidated", invalidated), zap.Error(err))
}

func (s *Service) failed(op string, err error) {
	s.log.Warn("backend call failed", zap.String("op", op), zap.Error(err))
}

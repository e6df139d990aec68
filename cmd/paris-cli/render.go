package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/radieske/paris-web-client/internal/display"
	"github.com/radieske/paris-web-client/internal/session"
	"github.com/radieske/paris-web-client/internal/views"
)

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func table(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
}

func renderSession(w io.Writer, s session.Session) {
	if s.User == nil {
		fmt.Fprintf(w, "Non connecté (%s)\n", s.State)
		return
	}
	fmt.Fprintf(w, "Connecté en tant que %s · %d points\n", s.User.Login, s.User.Points)
}

func renderBetCards(w io.Writer, cards []views.BetCard) {
	tw := table(w)
	fmt.Fprintln(tw, "ID\tTITRE\tLIGUE\tCRÉATEUR\tSTATUT\tVOTES\tCRÉÉ LE")
	for _, c := range cards {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%d\t%s\n",
			c.ID, display.Truncate(c.Title, 40), c.League, c.Creator, c.StatusLabel, c.TotalVotes, c.CreatedAt)
	}
	_ = tw.Flush()
}

func renderRankRows(w io.Writer, rows []views.RankRow) {
	tw := table(w)
	fmt.Fprintln(tw, "POS\tLOGIN\tPOINTS\tPARIS\tGAGNÉS\tRÉUSSITE")
	for _, r := range rows {
		me := ""
		if r.IsCurrentUser {
			me = " (vous)"
		}
		fmt.Fprintf(tw, "%s\t%s%s\t%d\t%d\t%d\t%d%%\n",
			r.PositionLabel, r.Login, me, r.Points, r.TotalBets, r.WonBets, r.WinRatePercent)
	}
	_ = tw.Flush()
}

func renderHome(w io.Writer, m views.HomeModel) {
	if m.Error != "" {
		return
	}
	fmt.Fprintf(w, "Bienvenue %s ! Vous avez %d points.\n\n", m.Login, m.Points)

	fmt.Fprintln(w, "Paris récents")
	if len(m.RecentBets) == 0 {
		fmt.Fprintln(w, views.MsgNoBets)
	} else {
		renderBetCards(w, m.RecentBets)
	}

	fmt.Fprintln(w, "\nTop classement")
	if len(m.TopRanking) == 0 {
		fmt.Fprintln(w, views.MsgNoRanking)
	} else {
		renderRankRows(w, m.TopRanking)
	}

	fmt.Fprintln(w, "\nActions rapides")
	for _, a := range m.QuickActions {
		fmt.Fprintf(w, "  %s: %s (%s)\n", a.Title, a.Description, a.Path)
	}
}

func renderBets(w io.Writer, m views.BetsModel) {
	if m.Error != "" {
		return
	}
	fmt.Fprintf(w, "%d paris · %d actifs · %d résolus\n", m.Total, m.Active, m.Resolved)
	if len(m.Leagues) > 0 {
		fmt.Fprintf(w, "Ligues: %s\n", strings.Join(m.Leagues, ", "))
	}
	fmt.Fprintln(w)
	if m.Empty != "" {
		fmt.Fprintln(w, m.Empty)
		return
	}
	renderBetCards(w, m.Bets)
}

func renderBetDetail(w io.Writer, m views.BetDetailModel) {
	if m.Bet == nil {
		return
	}
	b := m.Bet
	fmt.Fprintf(w, "#%s %s [%s]\n", b.ID, b.Title, b.StatusLabel)
	fmt.Fprintf(w, "%s\n", b.Description)
	fmt.Fprintf(w, "Ligue: %s · Créé par %s le %s\n\n", b.League, b.Creator, b.CreatedAt)

	tw := table(w)
	fmt.Fprintln(tw, "#\tOPTION\tVOTES\t%\t")
	for _, o := range m.Options {
		var marks []string
		if o.IsWinner {
			marks = append(marks, "gagnante")
		}
		if o.IsUserVote {
			marks = append(marks, "votre vote")
		}
		fmt.Fprintf(tw, "%d\t%s\t%d\t%d%%\t%s\n", o.Index, o.Label, o.Votes, o.Percent, strings.Join(marks, ", "))
	}
	_ = tw.Flush()
	fmt.Fprintf(w, "\nTotal: %d votes\n", m.TotalVotes)

	switch {
	case m.CanVote:
		fmt.Fprintf(w, "Votez avec: paris-cli vote %s -option N\n", b.ID)
	case m.CanResolve:
		fmt.Fprintf(w, "Résolvez avec: paris-cli resolve %s -option N\n", b.ID)
	}
	if m.Success != "" {
		fmt.Fprintln(w, m.Success)
	}
}

func renderCreate(w io.Writer, m views.CreateBetModel) {
	if m.Success == "" {
		return
	}
	fmt.Fprintln(w, m.Success)
	fmt.Fprintf(w, "Pari #%s: %s\n", m.BetID, m.Redirect)
}

func renderRanking(w io.Writer, m views.RankingModel) {
	if m.Error != "" {
		return
	}
	fmt.Fprintf(w, "Classement %s · %d participants · max %d points · réussite moyenne %d%%\n\n",
		m.League, m.Participants, m.MaxPoints, m.AverageWinRatePercent)
	if m.Empty != "" {
		fmt.Fprintln(w, m.Empty)
		return
	}
	renderRankRows(w, m.Rows)
	if m.CurrentUser != nil {
		fmt.Fprintf(w, "\nVotre position: %s avec %d points\n", m.CurrentUser.PositionLabel, m.CurrentUser.Points)
	}
}

func renderProfile(w io.Writer, m views.ProfileModel) {
	if m.User == nil {
		return
	}
	u := m.User
	fmt.Fprintf(w, "%s · %d points\n", u.Login, u.Points)
	fmt.Fprintf(w, "Paris: %d · Gagnés: %d · Perdus: %d · Réussite: %d%% (%s)\n",
		u.TotalBets, u.WonBets, u.LostBets, m.WinRatePercent, m.Level.Name)
	if m.Rank > 0 {
		fmt.Fprintf(w, "Classement: %s\n", display.PositionLabel(m.Rank))
	}

	fmt.Fprintln(w, "\nBadges")
	if len(m.Badges) == 0 {
		fmt.Fprintln(w, views.MsgNoBadges)
	}
	for _, b := range m.Badges {
		fmt.Fprintf(w, "  %s %s: %s\n", b.Icon, b.Name, b.Description)
	}

	fmt.Fprintf(w, "\nMes paris créés (%d)\n", m.CreatedBets)
	if m.Empty != "" {
		fmt.Fprintln(w, m.Empty)
		return
	}
	tw := table(w)
	for _, b := range m.RecentBets {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", b.ID, b.ShortTitle, b.StatusLabel, b.CreatedAt)
	}
	_ = tw.Flush()
}

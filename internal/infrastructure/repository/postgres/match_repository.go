package postgres

import (
	"context"
	"fmt"

	"github.com/bytedance/sonic"
	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/cricket-scoring/internal/domain/match"
	qb "github.com/riskibarqy/cricket-scoring/internal/platform/querybuilder"
)

type MatchRepository struct {
	db *sqlx.DB
}

func NewMatchRepository(db *sqlx.DB) *MatchRepository {
	return &MatchRepository{db: db}
}

func (r *MatchRepository) Create(ctx context.Context, m match.Match) error {
	insertModel, err := matchToInsertModel(m)
	if err != nil {
		return err
	}

	query, args, err := qb.InsertModel("matches", insertModel, "")
	if err != nil {
		return fmt.Errorf("build insert match query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("insert match %s: already exists", m.ID)
		}
		return fmt.Errorf("insert match %s: %w", m.ID, err)
	}
	return nil
}

func (r *MatchRepository) GetByID(ctx context.Context, matchID string) (match.Match, bool, error) {
	query, args, err := qb.Select("*").From("matches").
		Where(
			qb.Eq("public_id", matchID),
			qb.IsNull("deleted_at"),
		).
		Limit(1).
		ToSQL()
	if err != nil {
		return match.Match{}, false, fmt.Errorf("build get match query: %w", err)
	}

	var row matchTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return match.Match{}, false, nil
		}
		return match.Match{}, false, fmt.Errorf("get match: %w", err)
	}

	m, err := matchFromRow(row)
	if err != nil {
		return match.Match{}, false, err
	}
	return m, true, nil
}

func (r *MatchRepository) Update(ctx context.Context, m match.Match) error {
	profileDoc, err := sonic.Marshal(profileToDocument(m.Profile))
	if err != nil {
		return fmt.Errorf("encode match profile: %w", err)
	}
	inningsDoc, err := sonic.Marshal(inningsToDocuments(m.Innings))
	if err != nil {
		return fmt.Errorf("encode match innings: %w", err)
	}

	query, args, err := qb.Update("matches").
		Set("profile", string(profileDoc)).
		Set("toss_winner", m.TossWinner).
		Set("toss_decision", string(m.TossDecision)).
		Set("batting_first_side", m.BattingFirstSide).
		Set("innings", string(inningsDoc)).
		Set("state", string(m.State)).
		Set("winner_team_id", m.WinnerTeamID).
		Set("result_summary", m.ResultSummary).
		Set("updated_at", m.UpdatedAt).
		Where(
			qb.Eq("public_id", m.ID),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build update match query: %w", err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update match %s: %w", m.ID, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("update match %s: no rows updated", m.ID)
	}
	return nil
}

func (r *MatchRepository) ListByTournament(ctx context.Context, tournamentID string) ([]match.Match, error) {
	query, args, err := qb.Select("*").From("matches").
		Where(
			qb.Eq("tournament_id", tournamentID),
			qb.IsNull("deleted_at"),
		).
		OrderBy("created_at", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list tournament matches query: %w", err)
	}

	var rows []matchTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list tournament matches: %w", err)
	}

	out := make([]match.Match, 0, len(rows))
	for _, row := range rows {
		m, err := matchFromRow(row)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, nil
}

func matchToInsertModel(m match.Match) (matchInsertModel, error) {
	profileDoc, err := sonic.Marshal(profileToDocument(m.Profile))
	if err != nil {
		return matchInsertModel{}, fmt.Errorf("encode match profile: %w", err)
	}
	inningsDoc, err := sonic.Marshal(inningsToDocuments(m.Innings))
	if err != nil {
		return matchInsertModel{}, fmt.Errorf("encode match innings: %w", err)
	}

	return matchInsertModel{
		PublicID:         m.ID,
		TournamentID:     m.TournamentID,
		TeamA:            m.TeamA,
		TeamB:            m.TeamB,
		Profile:          string(profileDoc),
		TossWinner:       m.TossWinner,
		TossDecision:     string(m.TossDecision),
		BattingFirstSide: m.BattingFirstSide,
		Innings:          string(inningsDoc),
		State:            string(m.State),
		WinnerTeamID:     m.WinnerTeamID,
		ResultSummary:    m.ResultSummary,
		CreatedAt:        m.CreatedAt,
		UpdatedAt:        m.UpdatedAt,
	}, nil
}

func matchFromRow(row matchTableModel) (match.Match, error) {
	var profileDoc profileDocument
	if err := sonic.Unmarshal(row.Profile, &profileDoc); err != nil {
		return match.Match{}, fmt.Errorf("decode profile of match %s: %w", row.PublicID, err)
	}
	var inningsDocs []inningsDocument
	if len(row.Innings) > 0 {
		if err := sonic.Unmarshal(row.Innings, &inningsDocs); err != nil {
			return match.Match{}, fmt.Errorf("decode innings of match %s: %w", row.PublicID, err)
		}
	}

	return match.Match{
		ID:               row.PublicID,
		TournamentID:     row.TournamentID,
		TeamA:            row.TeamA,
		TeamB:            row.TeamB,
		Profile:          profileDoc.toDomain(),
		TossWinner:       row.TossWinner,
		TossDecision:     match.TossDecision(row.TossDecision),
		BattingFirstSide: row.BattingFirstSide,
		Innings:          inningsFromDocuments(inningsDocs),
		State:            match.State(row.State),
		WinnerTeamID:     row.WinnerTeamID,
		ResultSummary:    row.ResultSummary,
		CreatedAt:        row.CreatedAt,
		UpdatedAt:        row.UpdatedAt,
	}, nil
}

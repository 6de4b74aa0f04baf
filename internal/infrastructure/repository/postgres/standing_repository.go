package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/cricket-scoring/internal/domain/standing"
	qb "github.com/riskibarqy/cricket-scoring/internal/platform/querybuilder"
)

const upsertStandingSuffix = `ON CONFLICT (tournament_id, team_id)
DO UPDATE SET
    played = EXCLUDED.played,
    won = EXCLUDED.won,
    lost = EXCLUDED.lost,
    tied = EXCLUDED.tied,
    no_result = EXCLUDED.no_result,
    points = EXCLUDED.points,
    runs_scored = EXCLUDED.runs_scored,
    overs_faced = EXCLUDED.overs_faced,
    runs_conceded = EXCLUDED.runs_conceded,
    overs_bowled = EXCLUDED.overs_bowled,
    net_run_rate = EXCLUDED.net_run_rate,
    last_match_public_id = EXCLUDED.last_match_public_id,
    updated_at = EXCLUDED.updated_at`

type StandingRepository struct {
	db *sqlx.DB
}

func NewStandingRepository(db *sqlx.DB) *StandingRepository {
	return &StandingRepository{db: db}
}

func (r *StandingRepository) ListByTournament(ctx context.Context, tournamentID string) ([]standing.TeamStanding, error) {
	query, args, err := qb.Select("*").From("tournament_standings").
		Where(qb.Eq("tournament_id", tournamentID)).
		OrderBy("id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list standings query: %w", err)
	}

	var rows []standingTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list standings: %w", err)
	}

	out := make([]standing.TeamStanding, 0, len(rows))
	for _, row := range rows {
		out = append(out, standingFromRow(row))
	}
	return out, nil
}

func (r *StandingRepository) Get(ctx context.Context, tournamentID, teamID string) (standing.TeamStanding, bool, error) {
	query, args, err := qb.Select("*").From("tournament_standings").
		Where(
			qb.Eq("tournament_id", tournamentID),
			qb.Eq("team_id", teamID),
		).
		Limit(1).
		ToSQL()
	if err != nil {
		return standing.TeamStanding{}, false, fmt.Errorf("build get standing query: %w", err)
	}

	var row standingTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return standing.TeamStanding{}, false, nil
		}
		return standing.TeamStanding{}, false, fmt.Errorf("get standing: %w", err)
	}
	return standingFromRow(row), true, nil
}

func (r *StandingRepository) ApplyMatch(ctx context.Context, tournamentID, matchID string, rows []standing.TeamStanding) (bool, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("begin tx apply match to standings: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	markQuery, markArgs, err := qb.InsertInto("standings_applied_matches").
		Columns("tournament_id", "match_public_id").
		Values(tournamentID, matchID).
		Suffix("ON CONFLICT DO NOTHING").
		ToSQL()
	if err != nil {
		return false, fmt.Errorf("build mark applied match query: %w", err)
	}
	res, err := tx.ExecContext(ctx, markQuery, markArgs...)
	if err != nil {
		return false, fmt.Errorf("mark applied match %s: %w", matchID, err)
	}
	marked, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("mark applied match %s: %w", matchID, err)
	}
	if marked == 0 {
		return false, nil
	}

	if err := upsertStandings(ctx, tx, tournamentID, rows); err != nil {
		return false, err
	}
	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("commit apply match to standings tx: %w", err)
	}
	return true, nil
}

func (r *StandingRepository) ReplaceByTournament(ctx context.Context, tournamentID string, rows []standing.TeamStanding, matchIDs []string) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx replace standings: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	for _, table := range []string{"tournament_standings", "standings_applied_matches"} {
		query, args, err := qb.DeleteFrom(table).Where(qb.Eq("tournament_id", tournamentID)).ToSQL()
		if err != nil {
			return fmt.Errorf("build clear %s query: %w", table, err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}

	if err := upsertStandings(ctx, tx, tournamentID, rows); err != nil {
		return err
	}

	if len(matchIDs) > 0 {
		insert := qb.InsertInto("standings_applied_matches").Columns("tournament_id", "match_public_id")
		for _, matchID := range matchIDs {
			insert.Values(tournamentID, matchID)
		}
		query, args, err := insert.ToSQL()
		if err != nil {
			return fmt.Errorf("build insert applied matches query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("insert applied matches: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit replace standings tx: %w", err)
	}
	return nil
}

func upsertStandings(ctx context.Context, tx *sqlx.Tx, tournamentID string, rows []standing.TeamStanding) error {
	for _, item := range rows {
		insertModel := standingInsertModel{
			TournamentID: tournamentID,
			TeamID:       item.TeamID,
			Played:       item.Played,
			Won:          item.Won,
			Lost:         item.Lost,
			Tied:         item.Tied,
			NoResult:     item.NoResult,
			Points:       item.Points,
			RunsScored:   item.RunsScored,
			OversFaced:   item.OversFaced,
			RunsConceded: item.RunsConceded,
			OversBowled:  item.OversBowled,
			NetRunRate:   item.NetRunRate,
			LastMatchID:  item.LastMatchID,
			UpdatedAt:    item.UpdatedAt,
		}
		query, args, err := qb.InsertModel("tournament_standings", insertModel, upsertStandingSuffix)
		if err != nil {
			return fmt.Errorf("build upsert standing query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("upsert standing tournament=%s team=%s: %w", tournamentID, item.TeamID, err)
		}
	}
	return nil
}

func standingFromRow(row standingTableModel) standing.TeamStanding {
	return standing.TeamStanding{
		TournamentID: row.TournamentID,
		TeamID:       row.TeamID,
		Played:       row.Played,
		Won:          row.Won,
		Lost:         row.Lost,
		Tied:         row.Tied,
		NoResult:     row.NoResult,
		Points:       row.Points,
		RunsScored:   row.RunsScored,
		OversFaced:   row.OversFaced,
		RunsConceded: row.RunsConceded,
		OversBowled:  row.OversBowled,
		NetRunRate:   row.NetRunRate,
		LastMatchID:  row.LastMatchID,
		UpdatedAt:    row.UpdatedAt,
	}
}

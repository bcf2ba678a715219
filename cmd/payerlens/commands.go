package main

import (
	"maps"
	"slices"

	"github.com/spf13/cobra"

	"github.com/okian/payerlens/internal/domain/model"
	"github.com/okian/payerlens/internal/domain/negotiation"
	"github.com/okian/payerlens/internal/refdata"
)

func newScoreCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "score",
		Short: "Score physicians, practices or reputation",
	}

	var physicianFile, practiceFile, reputationFile string

	physician := &cobra.Command{
		Use:   "physician",
		Short: "Score one physician",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var p model.Physician
			if err := readInput(cmd, physicianFile, &p); err != nil {
				return err
			}
			return writeJSON(cmd, c.engine.ScorePhysician(cmd.Context(), p))
		},
	}
	addInputFlag(physician, &physicianFile)

	practice := &cobra.Command{
		Use:   "practice",
		Short: "Score a practice on quality, reputation, efficiency and position",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var p model.Practice
			if err := readInput(cmd, practiceFile, &p); err != nil {
				return err
			}
			return writeJSON(cmd, c.engine.ScorePractice(cmd.Context(), p))
		},
	}
	addInputFlag(practice, &practiceFile)

	rep := &cobra.Command{
		Use:   "reputation",
		Short: "Aggregate multi-source ratings into one score",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var ms []model.ReputationMetric
			if err := readInput(cmd, reputationFile, &ms); err != nil {
				return err
			}
			return writeJSON(cmd, c.engine.ScoreReputation(cmd.Context(), ms))
		},
	}
	addInputFlag(rep, &reputationFile)

	cmd.AddCommand(physician, practice, rep)
	return cmd
}

func newCompareCmd(c *cli) *cobra.Command {
	var (
		category, region string
		rate             float64
	)
	cmd := &cobra.Command{
		Use:   "compare",
		Short: "Compare a rate with the reference row for a service category",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return writeJSON(cmd, c.engine.CompareRate(cmd.Context(), category, region, rate))
		},
	}
	cmd.Flags().StringVar(&category, "category", "", "service category, e.g. \"Vision Care\"")
	cmd.Flags().StringVar(&region, "region", "", "optional region")
	cmd.Flags().Float64Var(&rate, "rate", 0, "rate to compare")
	_ = cmd.MarkFlagRequired("category")
	_ = cmd.MarkFlagRequired("rate")
	return cmd
}

func newFMVCmd(c *cli) *cobra.Command {
	var (
		category, region, specialty string
		volume                      int
	)
	cmd := &cobra.Command{
		Use:   "fmv",
		Short: "Price a service category for a specialty and annual volume",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return writeJSON(cmd, c.engine.FairMarketValue(cmd.Context(), category, region, specialty, volume))
		},
	}
	cmd.Flags().StringVar(&category, "category", "", "service category")
	cmd.Flags().StringVar(&region, "region", "", "optional region")
	cmd.Flags().StringVar(&specialty, "specialty", "", "physician specialty")
	cmd.Flags().IntVar(&volume, "volume", 0, "annual service volume")
	_ = cmd.MarkFlagRequired("category")
	return cmd
}

// positionInput is the document read by the position command.
type positionInput struct {
	Target model.PracticeScoreComponents   `yaml:"target"`
	Peers  []model.PracticeScoreComponents `yaml:"peers"`
}

func newPositionCmd(c *cli) *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "position",
		Short: "Place a scored practice among its peers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var in positionInput
			if err := readInput(cmd, file, &in); err != nil {
				return err
			}
			return writeJSON(cmd, c.engine.AnalyzeCompetitivePosition(cmd.Context(), in.Target, in.Peers))
		},
	}
	addInputFlag(cmd, &file)
	return cmd
}

func newPlaybookCmd(c *cli) *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "playbook",
		Short: "Build a negotiation playbook for one payer contract",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var req negotiation.Request
			if err := readInput(cmd, file, &req); err != nil {
				return err
			}
			pb, err := c.engine.BuildNegotiationPlaybook(cmd.Context(), req)
			if err != nil {
				return err
			}
			return writeJSON(cmd, pb)
		},
	}
	addInputFlag(cmd, &file)
	return cmd
}

// batchInput is the document read by the batch command.
type batchInput struct {
	Practices []model.Practice      `yaml:"practices"`
	Playbooks []negotiation.Request `yaml:"playbooks"`
}

func newBatchCmd(c *cli) *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "batch",
		Short: "Score practices and build playbooks concurrently",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var in batchInput
			if err := readInput(cmd, file, &in); err != nil {
				return err
			}
			ctx := cmd.Context()
			scores, err := c.engine.ScoreBatch(ctx, in.Practices)
			if err != nil {
				return err
			}
			playbooks, err := c.engine.PlaybookBatch(ctx, in.Playbooks)
			if err != nil {
				return err
			}
			return writeJSON(cmd, map[string]any{
				"practices": scores,
				"playbooks": playbooks,
			})
		},
	}
	addInputFlag(cmd, &file)
	return cmd
}

func newContractsCmd(c *cli) *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "contracts",
		Short: "Rank a contract portfolio by renewal urgency and rate gap",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var contracts []model.PayerContract
			if err := readInput(cmd, file, &contracts); err != nil {
				return err
			}
			return writeJSON(cmd, c.engine.PrioritizeContracts(cmd.Context(), contracts))
		},
	}
	addInputFlag(cmd, &file)
	return cmd
}

func newTablesCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tables [path]",
		Short: "Validate a reference tables file, or show the active tables",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return writeJSON(cmd, c.engine.Stats())
			}
			snap, err := refdata.LoadFile(args[0])
			if err != nil {
				return err
			}
			return writeJSON(cmd, map[string]any{
				"path":           args[0],
				"version":        snap.Tables.Version,
				"benchmark_rows": snap.References.Len(),
				"market_rates":   len(snap.Tables.MarketRates),
				"specialties":    slices.Sorted(maps.Keys(snap.Tables.SpecialtyMultipliers)),
			})
		},
	}
	return cmd
}

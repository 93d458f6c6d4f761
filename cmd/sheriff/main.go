package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/tpdc055/sheriff/internal/config"
	"github.com/tpdc055/sheriff/internal/db"
	"github.com/tpdc055/sheriff/internal/geo"
	"github.com/tpdc055/sheriff/internal/media"
	"github.com/tpdc055/sheriff/internal/migrate"
	"github.com/tpdc055/sheriff/internal/netstate"
	"github.com/tpdc055/sheriff/internal/observability"
	"github.com/tpdc055/sheriff/internal/server"
	"github.com/tpdc055/sheriff/internal/store"
	"github.com/tpdc055/sheriff/internal/syncer"
)

var rootCmd = &cobra.Command{
	Use:   "sheriff",
	Short: "Sheriff enforcement CLI",
	Long: `Sheriff tracks court writs through field enforcement: service attempts,
seizures and the fee ledger. Everything is written to a local durable store
first; when offline, mutations also land in a sync queue that drains to the
remote authority once connectivity returns.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		workspace := viper.GetString("workspace")
		if _, err := db.EnsureWorkspace(workspace); err != nil {
			return err
		}
		return nil
	},
}

func main() {
	cobra.OnInitialize(initConfig)
	addPersistentFlags()
	registerCommands()
	if err := rootCmd.Execute(); err != nil {
		fmt.Println("error:", err)
		os.Exit(1)
	}
}

func initConfig() {
	viper.SetEnvPrefix("SHERIFF")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
}

func addPersistentFlags() {
	rootCmd.PersistentFlags().StringP("workspace", "w", ".", "workspace directory")
	rootCmd.PersistentFlags().Bool("json", false, "output JSON")
	rootCmd.PersistentFlags().String("actor-id", "", "actor identifier (defaults to configured officer)")
	rootCmd.PersistentFlags().Bool("offline", false, "treat connectivity as down; mutations queue for sync")
	rootCmd.PersistentFlags().Bool("force", false, "force operation")
	_ = viper.BindPFlag("workspace", rootCmd.PersistentFlags().Lookup("workspace"))
	_ = viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
	_ = viper.BindPFlag("actor-id", rootCmd.PersistentFlags().Lookup("actor-id"))
	_ = viper.BindPFlag("offline", rootCmd.PersistentFlags().Lookup("offline"))
	_ = viper.BindPFlag("force", rootCmd.PersistentFlags().Lookup("force"))
}

func registerCommands() {
	rootCmd.AddCommand(writCmd())
	rootCmd.AddCommand(attemptCmd())
	rootCmd.AddCommand(seizureCmd())
	rootCmd.AddCommand(feeCmd())
	rootCmd.AddCommand(queueCmd())
	rootCmd.AddCommand(statusCmd())
	rootCmd.AddCommand(logCmd())
	rootCmd.AddCommand(syncCmd())
	rootCmd.AddCommand(resetCmd())
	rootCmd.AddCommand(serveCmd())
}

func writCmd() *cobra.Command {
	writ := &cobra.Command{
		Use:   "writ",
		Short: "Manage writs",
		Long:  "Writs are the court orders under enforcement. Statuses flow pending -> in_progress -> executed -> closed, with stayed as a detour.",
	}
	writ.AddCommand(writListCmd())
	writ.AddCommand(writShowCmd())
	writ.AddCommand(writUpdateCmd())
	return writ
}

func writListCmd() *cobra.Command {
	var status string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List writs",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(cmd.Context(), func(ctx context.Context, s *store.Store) error {
				writs := s.List()
				if status != "" {
					filtered := writs[:0]
					for _, w := range writs {
						if w.Status == status {
							filtered = append(filtered, w)
						}
					}
					writs = filtered
				}
				if viper.GetBool("json") {
					return printJSON(writs)
				}
				tw := table.NewWriter()
				tw.SetOutputMirror(os.Stdout)
				tw.AppendHeader(table.Row{"ID", "Writ No", "Type", "Status", "Service", "Target", "Priority"})
				for _, w := range writs {
					tw.AppendRow(table.Row{w.ID, w.WritNumber, w.Type, w.Status, w.ServiceStatus, w.TargetParty, w.Priority})
				}
				tw.Render()
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&status, "status", "", "status filter")
	return cmd
}

func writShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show a writ",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(cmd.Context(), func(ctx context.Context, s *store.Store) error {
				w, err := s.Get(args[0])
				if err != nil {
					return err
				}
				if viper.GetBool("json") {
					return printJSON(w)
				}
				fmt.Printf("Writ %s (%s)\n", w.WritNumber, w.ID)
				fmt.Printf("  Case:     %s\n", w.CaseNumber)
				fmt.Printf("  Type:     %s  Status: %s  Service: %s  Priority: %s\n", w.Type, w.Status, w.ServiceStatus, w.Priority)
				fmt.Printf("  Target:   %s, %s\n", w.TargetParty, w.TargetAddress)
				fmt.Printf("  Officer:  %s\n", w.AssignedOfficer)
				fmt.Printf("  Issued:   %s  Expires: %s\n", w.IssuedDate, w.ExpiryDate)
				fmt.Printf("  Attempts: %d  Seizures: %d (value %d)\n", len(w.ServiceAttempts), len(w.SeizureItems), w.TotalSeizedValue())
				fmt.Printf("  Fees:     charged %d, collected %d, outstanding %d\n", w.TotalFeesCharged, w.TotalFeesCollected, w.OutstandingFees())
				return nil
			})
		},
	}
	return cmd
}

func writUpdateCmd() *cobra.Command {
	var opts store.UpdateOptions
	var officer, instructions string
	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update writ fields",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.ID = args[0]
			opts.ActorID = viper.GetString("actor-id")
			opts.Force = viper.GetBool("force")
			if cmd.Flags().Changed("officer") {
				opts.AssignedOfficer = &officer
			}
			if cmd.Flags().Changed("instructions") {
				opts.Instructions = &instructions
			}
			return withStore(cmd.Context(), func(ctx context.Context, s *store.Store) error {
				w, err := s.UpdateWrit(ctx, opts)
				if err != nil {
					return err
				}
				return printJSONOrTable(w)
			})
		},
	}
	cmd.Flags().StringVar(&opts.Status, "status", "", "status (pending, in_progress, executed, closed, stayed)")
	cmd.Flags().StringVar(&opts.ServiceStatus, "service-status", "", "service status")
	cmd.Flags().StringVar(&officer, "officer", "", "assigned officer")
	cmd.Flags().StringVar(&opts.Priority, "priority", "", "priority (low, medium, high, urgent)")
	cmd.Flags().StringVar(&instructions, "instructions", "", "enforcement instructions")
	return cmd
}

func attemptCmd() *cobra.Command {
	attempt := &cobra.Command{Use: "attempt", Short: "Record service attempts"}
	attempt.AddCommand(attemptLogCmd())
	return attempt
}

func attemptLogCmd() *cobra.Command {
	var opts store.AttemptOptions
	var locate bool
	cmd := &cobra.Command{
		Use:   "log <writ-id>",
		Short: "Log a service attempt",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.WritID = args[0]
			opts.ActorID = viper.GetString("actor-id")
			return withStore(cmd.Context(), func(ctx context.Context, s *store.Store) error {
				if locate && opts.GPSCoordinates == "" {
					opts.GPSCoordinates = acquireFix(ctx, s.Config)
				}
				w, attempt, err := s.LogServiceAttempt(ctx, opts)
				if err != nil {
					return err
				}
				if viper.GetBool("json") {
					return printJSON(map[string]any{"writ": w, "attempt": attempt})
				}
				fmt.Printf("Logged attempt %s on %s: outcome=%s service=%s status=%s\n",
					attempt.ID, w.WritNumber, attempt.Outcome, w.ServiceStatus, w.Status)
				if attempt.GPSCoordinates != "" {
					fmt.Printf("  Position: %s (%s)\n", attempt.GPSCoordinates, geo.MapsLink(attempt.GPSCoordinates))
				}
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&opts.Outcome, "outcome", "", "outcome (served, refused, not_found, address_incorrect, other)")
	cmd.Flags().StringVar(&opts.Notes, "notes", "", "attempt notes")
	cmd.Flags().StringVar(&opts.Location, "location", "", "attempt location")
	cmd.Flags().StringVar(&opts.Date, "date", "", "attempt date (YYYY-MM-DD, defaults to today)")
	cmd.Flags().StringVar(&opts.Officer, "officer", "", "officer name (defaults to configured officer)")
	cmd.Flags().StringVar(&opts.GPSCoordinates, "gps", "", "GPS coordinates")
	cmd.Flags().StringVar(&opts.WitnessName, "witness", "", "witness name")
	cmd.Flags().BoolVar(&locate, "locate", false, "acquire a position fix for this attempt")
	_ = cmd.MarkFlagRequired("outcome")
	return cmd
}

func seizureCmd() *cobra.Command {
	seizure := &cobra.Command{Use: "seizure", Short: "Record seizures"}
	seizure.AddCommand(seizureRecordCmd())
	return seizure
}

func seizureRecordCmd() *cobra.Command {
	var opts store.SeizureOptions
	var photos []string
	var locate bool
	cmd := &cobra.Command{
		Use:   "record <writ-id>",
		Short: "Record a seized item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.WritID = args[0]
			opts.ActorID = viper.GetString("actor-id")
			if len(photos) > 0 {
				files := make([]media.File, 0, len(photos))
				for _, p := range photos {
					data, err := os.ReadFile(p)
					if err != nil {
						return err
					}
					files = append(files, media.File{Name: p, Data: data})
				}
				encoded, rejected := media.EncodeBatch(files)
				for _, rej := range rejected {
					fmt.Fprintln(os.Stderr, "warning:", rej)
				}
				opts.Photos = encoded
			}
			return withStore(cmd.Context(), func(ctx context.Context, s *store.Store) error {
				if locate && opts.GPSCoordinates == "" {
					opts.GPSCoordinates = acquireFix(ctx, s.Config)
				}
				w, item, err := s.RecordSeizure(ctx, opts)
				if err != nil {
					return err
				}
				if viper.GetBool("json") {
					return printJSON(map[string]any{"writ": w, "item": item})
				}
				fmt.Printf("Recorded seizure %s on %s: %s (value %d)\n", item.ID, w.WritNumber, item.Description, item.EstimatedValue)
				fmt.Printf("  Inventory total: %d across %d items\n", w.TotalSeizedValue(), len(w.SeizureItems))
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&opts.Description, "description", "", "item description")
	cmd.Flags().Int64Var(&opts.EstimatedValue, "value", 0, "estimated value in minor currency units")
	cmd.Flags().StringVar(&opts.Condition, "condition", "", "item condition")
	cmd.Flags().StringVar(&opts.Location, "location", "", "storage location")
	cmd.Flags().StringVar(&opts.SeizedDate, "date", "", "seizure date (YYYY-MM-DD, defaults to today)")
	cmd.Flags().StringVar(&opts.GPSCoordinates, "gps", "", "GPS coordinates")
	cmd.Flags().StringArrayVar(&photos, "photo", nil, "photo file (jpeg or png, repeatable)")
	cmd.Flags().BoolVar(&locate, "locate", false, "acquire a position fix for this seizure")
	_ = cmd.MarkFlagRequired("description")
	_ = cmd.MarkFlagRequired("value")
	return cmd
}

func feeCmd() *cobra.Command {
	fee := &cobra.Command{Use: "fee", Short: "Manage the fee ledger"}
	fee.AddCommand(feeAddCmd())
	fee.AddCommand(feePayCmd())
	return fee
}

func feeAddCmd() *cobra.Command {
	var opts store.FeeOptions
	cmd := &cobra.Command{
		Use:   "add <writ-id>",
		Short: "Add an enforcement fee",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.WritID = args[0]
			opts.ActorID = viper.GetString("actor-id")
			return withStore(cmd.Context(), func(ctx context.Context, s *store.Store) error {
				w, fee, err := s.AddFee(ctx, opts)
				if err != nil {
					return err
				}
				if viper.GetBool("json") {
					return printJSON(map[string]any{"writ": w, "fee": fee})
				}
				fmt.Printf("Added fee %s to %s: %s (%d)\n", fee.ID, w.WritNumber, fee.Description, fee.Amount)
				fmt.Printf("  Charged %d, collected %d, outstanding %d\n", w.TotalFeesCharged, w.TotalFeesCollected, w.OutstandingFees())
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&opts.Description, "description", "", "fee description")
	cmd.Flags().Int64Var(&opts.Amount, "amount", 0, "fee amount in minor currency units")
	cmd.Flags().BoolVar(&opts.Paid, "paid", false, "mark the fee paid on creation")
	cmd.Flags().StringVar(&opts.ReceiptNumber, "receipt", "", "receipt number")
	_ = cmd.MarkFlagRequired("description")
	_ = cmd.MarkFlagRequired("amount")
	return cmd
}

func feePayCmd() *cobra.Command {
	var receipt, paidDate string
	cmd := &cobra.Command{
		Use:   "pay <writ-id> <fee-id>",
		Short: "Mark a fee paid",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(cmd.Context(), func(ctx context.Context, s *store.Store) error {
				w, err := s.MarkFeePaid(ctx, args[0], args[1], paidDate, receipt, viper.GetString("actor-id"))
				if err != nil {
					return err
				}
				if viper.GetBool("json") {
					return printJSON(w)
				}
				fmt.Printf("Paid fee %s on %s. Charged %d, collected %d, outstanding %d\n",
					args[1], w.WritNumber, w.TotalFeesCharged, w.TotalFeesCollected, w.OutstandingFees())
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&receipt, "receipt", "", "receipt number")
	cmd.Flags().StringVar(&paidDate, "date", "", "paid date (YYYY-MM-DD, defaults to today)")
	return cmd
}

func queueCmd() *cobra.Command {
	queue := &cobra.Command{
		Use:   "queue",
		Short: "Inspect the offline sync queue",
	}
	queue.AddCommand(queueStatusCmd())
	queue.AddCommand(queueClearCmd())
	return queue
}

func queueStatusCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show queued mutations",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(cmd.Context(), func(ctx context.Context, s *store.Store) error {
				entries, err := s.Queue.List(ctx)
				if err != nil {
					return err
				}
				pending, err := s.Queue.PendingCount(ctx)
				if err != nil {
					return err
				}
				if viper.GetBool("json") {
					return printJSON(map[string]any{"entries": entries, "pending": pending})
				}
				tw := table.NewWriter()
				tw.SetOutputMirror(os.Stdout)
				tw.AppendHeader(table.Row{"ID", "Action", "Queued", "Synced"})
				for _, e := range entries {
					tw.AppendRow(table.Row{e.ID, e.Action, time.UnixMilli(e.Timestamp).UTC().Format(time.RFC3339), e.Synced})
				}
				tw.Render()
				fmt.Printf("Pending: %d\n", pending)
				return nil
			})
		},
	}
	return cmd
}

func queueClearCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Drop every queued mutation",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !viper.GetBool("force") {
				return fmt.Errorf("refusing to clear the queue without --force")
			}
			return withStore(cmd.Context(), func(ctx context.Context, s *store.Store) error {
				if err := s.Queue.Clear(ctx); err != nil {
					return err
				}
				fmt.Println("Queue cleared.")
				return nil
			})
		},
	}
	return cmd
}

func statusCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show store and sync status",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(cmd.Context(), func(ctx context.Context, s *store.Store) error {
				pending, err := s.PendingSyncCount(ctx)
				if err != nil {
					return err
				}
				lastSync, err := s.LastSyncTime(ctx)
				if err != nil {
					return err
				}
				usage, err := s.UsageReport(ctx)
				if err != nil {
					return err
				}
				stats := s.Stats()
				if viper.GetBool("json") {
					return printJSON(map[string]any{
						"online":       s.IsOnline(),
						"pending_sync": pending,
						"last_sync":    lastSync,
						"storage":      usage,
						"stats":        stats,
					})
				}
				fmt.Printf("Online: %v  Pending sync: %d\n", s.IsOnline(), pending)
				if lastSync > 0 {
					fmt.Printf("Last save: %s\n", time.UnixMilli(lastSync).UTC().Format(time.RFC3339))
				} else {
					fmt.Println("Last save: never")
				}
				fmt.Printf("Storage: %d / %d bytes\n", usage.Used, usage.Budget)
				fmt.Printf("Writs: %d total, %d pending, %d in progress, %d executed\n",
					stats.Total, stats.Pending, stats.InProgress, stats.Executed)
				fmt.Printf("Fees: %d charged, %d collected\n", stats.TotalFees, stats.CollectedFees)
				return nil
			})
		},
	}
	return cmd
}

func logCmd() *cobra.Command {
	log := &cobra.Command{Use: "log", Short: "Audit log"}
	log.AddCommand(logTailCmd())
	return log
}

func logTailCmd() *cobra.Command {
	var n int
	var evtType, writID string
	cmd := &cobra.Command{
		Use:   "tail",
		Short: "Tail events",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(cmd.Context(), func(ctx context.Context, s *store.Store) error {
				records, err := s.Events.Latest(ctx, n, 0, evtType, writID)
				if err != nil {
					return err
				}
				return printJSONOrTable(records)
			})
		},
	}
	cmd.Flags().IntVar(&n, "n", 20, "number of events")
	cmd.Flags().StringVar(&evtType, "type", "", "event type filter")
	cmd.Flags().StringVar(&writID, "writ", "", "writ id filter")
	return cmd
}

func syncCmd() *cobra.Command {
	sync := &cobra.Command{Use: "sync", Short: "Sync against the remote authority"}
	sync.AddCommand(syncNowCmd())
	return sync
}

func syncNowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "now",
		Short: "Drain the queue once",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(cmd.Context(), func(ctx context.Context, s *store.Store) error {
				cfg := syncer.Config{
					URL:     s.Config.Sync.URL,
					Timeout: time.Duration(s.Config.Sync.TimeoutSeconds) * time.Second,
				}
				if err := syncer.Once(ctx, s.Queue, s.Net, cfg, s.Logger); err != nil {
					return err
				}
				pending, err := s.PendingSyncCount(ctx)
				if err != nil {
					return err
				}
				fmt.Printf("Drain complete. Pending: %d\n", pending)
				return nil
			})
		},
	}
	return cmd
}

func resetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Delete the local store; next run reseeds the demo writs",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !viper.GetBool("force") {
				return fmt.Errorf("refusing to reset without --force")
			}
			workspace := viper.GetString("workspace")
			path := db.Path(workspace)
			if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
				return err
			}
			fmt.Printf("Removed %s\n", path)
			return nil
		},
	}
	return cmd
}

func serveCmd() *cobra.Command {
	var addr, basePath string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start HTTP API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			workspace := viper.GetString("workspace")
			logger, err := zap.NewProduction()
			if err != nil {
				return err
			}
			defer logger.Sync()
			conn, err := db.Open(db.Config{Workspace: workspace})
			if err != nil {
				return err
			}
			defer conn.Close()
			if err := migrate.Migrate(conn); err != nil {
				return err
			}
			cfg, err := config.Load(workspace, viper.GetString("actor-id"))
			if err != nil {
				return err
			}
			net := netstate.New(!viper.GetBool("offline"))
			observability.SetOnline(net.IsOnline())
			net.OnChange(observability.SetOnline)
			s, err := store.Open(cmd.Context(), conn, cfg, logger, net)
			if err != nil {
				return err
			}
			dispatcher := syncer.Start(s.Queue, net, syncer.Config{
				URL:      cfg.Sync.URL,
				Interval: time.Duration(cfg.Sync.IntervalSeconds) * time.Second,
				Timeout:  time.Duration(cfg.Sync.TimeoutSeconds) * time.Second,
			}, logger)
			defer dispatcher.Stop()
			if addr == "" {
				addr = cfg.Server.Addr
			}
			if basePath == "" {
				basePath = cfg.Server.BasePath
			}
			handler, err := server.New(server.Config{Store: s, Net: net, BasePath: basePath})
			if err != nil {
				return err
			}
			srv := &http.Server{Addr: addr, Handler: handler}
			go func() {
				<-cmd.Context().Done()
				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				srv.Shutdown(ctx)
			}()
			fmt.Printf("Serving Sheriff API on http://%s%s (OpenAPI at %s/openapi.json, Swagger UI at /docs)\n", addr, basePath, basePath)
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (defaults to config)")
	cmd.Flags().StringVar(&basePath, "base-path", "", "API base path (defaults to config)")
	return cmd
}

// --- helpers ---

func withStore(ctx context.Context, fn func(context.Context, *store.Store) error) error {
	workspace := viper.GetString("workspace")
	conn, err := db.Open(db.Config{Workspace: workspace})
	if err != nil {
		return err
	}
	defer conn.Close()
	if err := migrate.Migrate(conn); err != nil {
		return err
	}
	cfg, err := config.Load(workspace, viper.GetString("actor-id"))
	if err != nil {
		return err
	}
	net := netstate.New(!viper.GetBool("offline"))
	s, err := store.Open(ctx, conn, cfg, zap.NewNop(), net)
	if err != nil {
		return err
	}
	return fn(ctx, s)
}

func acquireFix(ctx context.Context, cfg *config.Config) string {
	if cfg == nil || cfg.Geo.FixURL == "" {
		fmt.Fprintln(os.Stderr, "warning: no position fix provider configured")
		return ""
	}
	coords, err := geo.Acquire(ctx, &geo.HTTPProvider{URL: cfg.Geo.FixURL})
	if err != nil {
		fmt.Fprintln(os.Stderr, "warning: position fix failed:", err)
		return ""
	}
	return geo.Format(coords)
}

func printJSONOrTable(v any) error {
	if viper.GetBool("json") {
		return printJSON(v)
	}
	b, _ := json.MarshalIndent(v, "", "  ")
	fmt.Println(string(b))
	return nil
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

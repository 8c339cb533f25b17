package commands

import (
	"context"
	"os"

	"github.com/PowerDNS/simpleblob"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/PowerDNS/multimap/config"
	"github.com/PowerDNS/multimap/config/logger"
	"github.com/PowerDNS/multimap/snapshots"
	"github.com/PowerDNS/multimap/wire"
)

var (
	configFile string
	debug      bool
	logConfig  bool
	conf       config.Config
)

var (
	// These are set by Execute
	rootCtx    context.Context
	rootCancel context.CancelFunc
)

var rootHelp = `This tool manages immutable multimap snapshots in a storage bucket.

Snapshots are gzipped binary blobs of string to string-list tables,
named "<prefix>__<timestamp>.mm.gz". The storage backend and the prefix
are configured in a YAML config file.
`

var rootCmd = &cobra.Command{
	Use:   "mmsnap",
	Short: "Manage immutable multimap snapshots in a storage bucket",
	Long:  rootHelp,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		conf = config.Default()
		conf.Version = version
		err := conf.LoadYAMLFile(configFile, true)
		if err != nil {
			logrus.Fatalf("Load config file %q: %v", configFile, err)
		}

		conf.Log = conf.Log.Merge(logger.FlagConfig)
		if debug {
			conf.Log.Level = "debug"
		}
		// Check after the flag merge. A config must always be valid.
		if err := conf.Check(); err != nil {
			logrus.Fatalf("Config file error: %v", err)
		}
		logger.Configure(conf.Log)
		logrus.WithField("version", version).Debug("Running")
		if logConfig {
			logrus.Infof("Effective configuration:\n%s\n", conf.String())
		}
	},
	Run: func(cmd *cobra.Command, args []string) {
		_ = cmd.Help()
	},
	Version: version,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "mmsnap.yaml", "Config file")
	rootCmd.PersistentFlags().BoolVar(&logConfig, "log-config", false, "Log the evaluated configuration on startup")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Enable debug logging")
	logger.RegisterFlagsWith(rootCmd.PersistentFlags().StringVar)
}

func Execute() {
	rootCtx, rootCancel = context.WithCancel(context.Background())
	defer rootCancel()
	if err := rootCmd.Execute(); err != nil {
		logrus.WithError(err).Error("Error")
		os.Exit(1)
	}
}

// storageBackend opens the configured simpleblob backend.
func storageBackend(ctx context.Context) (simpleblob.Interface, error) {
	return simpleblob.GetBackend(ctx, conf.Storage.Type, conf.Storage.Options)
}

// newSnapshotter opens the configured backend and wraps it in a Snapshotter
// for string to string tables, the only element types the CLI handles.
func newSnapshotter(ctx context.Context) (*snapshots.Snapshotter[string, string], error) {
	st, err := storageBackend(ctx)
	if err != nil {
		return nil, err
	}
	return snapshots.New(st, conf.Snapshots.Prefix, wire.String(), wire.String())
}

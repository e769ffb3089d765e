package main
import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"stegende/config"
	"stegende/util"
)

const (
	StegendeFolder = ".stegende"
	ConfigFilename = "config.yaml"
	ConfigKeyVariableName = "STEGENDE_CONFIG_KEY"	// <base64 salt>:<password>
)

// state shared by all commands of one invocation
type app struct {
	configFile	string
	conf		*config.FullConfig
	logger		*zap.Logger
	out		io.Writer
}

func main() {
	if err := newRootCmd( os.Stdout, os.Stderr ).Execute(); err != nil {
		os.Exit(1)
	}
}

func defaultConfigFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ConfigFilename
	}
	return filepath.Join( home, StegendeFolder, ConfigFilename )
}

func newRootCmd( stdout, stderr io.Writer ) *cobra.Command {
	a := &app{ out: stdout, logger: zap.NewNop() }

	root := &cobra.Command{
		Use: "stegende",
		Short: "Hide text messages in images",
		Long: `stegende hides a text message in the least significant bits of an
image's pixels, optionally scrambled with a password, and reveals it again.
Keep results in PNG or BMP: lossy recompression destroys the message.`,
		SilenceUsage: true,
		PersistentPreRunE: func( cmd *cobra.Command, args []string ) error {
			return a.loadConfig()
		},
		PersistentPostRun: func( cmd *cobra.Command, args []string ) {
			_ = a.logger.Sync()
		},
	}
	root.SetOut( stdout )
	root.SetErr( stderr )
	root.PersistentFlags().StringVarP( &a.configFile, "config", "c", defaultConfigFile(), "configuration file (YAML)" )

	root.AddCommand(
		a.hideCmd(),
		a.revealCmd(),
		a.capacityCmd(),
		a.genconfigCmd(),
	)
	return root
}

// a missing configuration file is fine, defaults are used then.
func(a *app) loadConfig() error {
	key, err := config.KeyFromEnv( os.Getenv( ConfigKeyVariableName ) )
	if err != nil {
		return fmt.Errorf("invalid %s: %w", ConfigKeyVariableName, err)
	}
	conf, err := config.LoadConfig( a.configFile, key )
	if errors.Is( err, fs.ErrNotExist ) {
		conf = config.DefaultConfig()
	} else if err != nil {
		return fmt.Errorf("failed to load configuration %s: %w", a.configFile, err)
	}
	a.conf = conf
	a.logger = util.NewLogger( &conf.Logger )
	return nil
}

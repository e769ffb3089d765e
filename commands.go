package main
import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"stegende/config"
	"stegende/cryptography"
	"stegende/stegano/img"
	"stegende/stegano/lsb"
	stegutil "stegende/stegano/util"
	"stegende/util"
)

type passwordFlags struct {
	password	string
	ask		bool
}

func(p *passwordFlags) register( cmd *cobra.Command ) {
	cmd.Flags().StringVarP( &p.password, "password", "p", "", "password to scramble the message with" )
	cmd.Flags().BoolVarP( &p.ask, "ask-password", "P", false, "read the password from the terminal" )
}

func(p *passwordFlags) get() (stegutil.Password, error) {
	if p.ask {
		pw, err := util.GetPasswd("Password: ")
		if err != nil {
			return stegutil.NoPassword, err
		}
		return stegutil.NewPassword( string(pw) ), nil
	}
	return stegutil.NewPassword( p.password ), nil
}

// readInput enforces max_input_size before reading the whole file.
func(a *app) readInput( filename string ) ([]byte, error) {
	info, err := os.Stat( filename )
	if err != nil {
		return nil, err
	}
	if limit := a.conf.StegConfig.MaxInputSize; info.Size() > limit {
		return nil, fmt.Errorf("%s is %s, the limit is %s", filename,
			humanize.IBytes( uint64(info.Size()) ), humanize.IBytes( uint64(limit) ))
	}
	return os.ReadFile( filename )
}

func(a *app) hideCmd() *cobra.Command {
	var (
		message		string
		messageFile	string
		output		string
		format		string
		pwFlags		passwordFlags
	)
	cmd := &cobra.Command{
		Use: "hide [decoy image]",
		Short: "Hide a message in an image",
		Long: `Hide a message in an image. Without a decoy a random image from
decoy_files_folder is used. The message comes from --message, --message-file
or standard input.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func( cmd *cobra.Command, args []string ) error {
			decoyFile := ""
			if len(args) == 1 {
				decoyFile = args[0]
			} else {
				if a.conf.StegConfig.Folder == "" {
					return fmt.Errorf("no decoy image given and decoy_files_folder is not set")
				}
				picked, err := util.PickDecoy( a.conf.StegConfig.Folder )
				if err != nil {
					return err
				}
				decoyFile = picked
			}

			text, err := a.readMessage( cmd.InOrStdin(), message, messageFile )
			if err != nil {
				return err
			}
			pw, err := pwFlags.get()
			if err != nil {
				return err
			}
			if format == "" {
				format = a.conf.StegConfig.OutputFormat
			}
			outFormat, err := img.ParseFormat( format )
			if err != nil {
				return err
			}

			decoy, err := a.readInput( decoyFile )
			if err != nil {
				return err
			}
			native, err := img.DetectFormat( decoy )
			if err != nil {
				return fmt.Errorf("%s: %w", decoyFile, err)
			}
			if outFormat == img.FormatKeep {
				outFormat = native
			}
			if outFormat == img.FormatJPEG {
				a.logger.Warn("JPEG output keeps the message in DCT coefficients, do not recompress it",
					zap.String("decoy", decoyFile))
			}

			result, err := img.HideAs( decoy, text, pw, outFormat, a.conf.StegConfig.JpegQuality )
			if err != nil {
				a.logger.Error("failed to hide message", zap.String("decoy", decoyFile), zap.Error(err))
				return err
			}
			if output == "" {
				output = util.OutputFilename( decoyFile, string(outFormat) )
			}
			if err := os.WriteFile( output, result, 0644 ); err != nil {
				return err
			}
			fields := []zap.Field{
				zap.String("decoy", decoyFile),
				zap.String("output", output),
				zap.String("format", string(outFormat)),
				zap.Bool("password", pw.IsSet()),
			}
			// jsteg and palette carriers count their payload differently
			if outFormat == img.FormatPNG || outFormat == img.FormatBMP {
				fields = append( fields, zap.Int("payload_bits", lsb.PayloadBits( len(text) )) )
			}
			a.logger.Info("message hidden", fields...)
			fmt.Fprintf( a.out, "%s (%s)\n", output, humanize.IBytes( uint64(len(result)) ) )
			return nil
		},
	}
	cmd.Flags().StringVarP( &message, "message", "m", "", "message to hide" )
	cmd.Flags().StringVarP( &messageFile, "message-file", "f", "", "read the message from a file" )
	cmd.Flags().StringVarP( &output, "output", "o", "", "output file (default <decoy>-hidden.<format>)" )
	cmd.Flags().StringVar( &format, "format", "", "output format: png, bmp, jpeg, gif or keep (default from configuration)" )
	pwFlags.register( cmd )
	return cmd
}

func(a *app) readMessage( stdin io.Reader, message, messageFile string ) (string, error) {
	switch {
	case message != "" && messageFile != "":
		return "", fmt.Errorf("use either --message or --message-file")
	case message != "":
		return util.FixUnicode( message ), nil
	case messageFile != "":
		data, err := a.readInput( messageFile )
		if err != nil {
			return "", err
		}
		return util.FixUnicode( string(data) ), nil
	}
	limit := a.conf.StegConfig.MaxInputSize
	data, err := io.ReadAll( io.LimitReader( stdin, limit + 1 ) )
	if err != nil {
		return "", err
	}
	if int64(len(data)) > limit {
		return "", fmt.Errorf("standard input is larger than the limit of %s", humanize.IBytes( uint64(limit) ))
	}
	return util.FixUnicode( strings.TrimRight( string(data), "\r\n" ) ), nil
}

type revealResult struct {
	message	string
	err	error
}

func(a *app) revealCmd() *cobra.Command {
	var pwFlags passwordFlags
	cmd := &cobra.Command{
		Use: "reveal <image> [image...]",
		Short: "Reveal messages hidden in images",
		Args: cobra.MinimumNArgs(1),
		RunE: func( cmd *cobra.Command, args []string ) error {
			pw, err := pwFlags.get()
			if err != nil {
				return err
			}
			results, err := a.revealAll( cmd.Context(), args, pw )
			if err != nil {
				return err
			}

			failed := 0
			for i, res := range results {
				if res.err != nil {
					failed++
					a.logger.Error("failed to reveal message", zap.String("image", args[i]), zap.Error(res.err))
					fmt.Fprintf( cmd.ErrOrStderr(), "%s: %v\n", args[i], res.err )
					continue
				}
				if len(args) == 1 {
					fmt.Fprintln( a.out, res.message )
				} else {
					fmt.Fprintf( a.out, "%s: %s\n", args[i], res.message )
				}
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d images could not be revealed", failed, len(args))
			}
			return nil
		},
	}
	pwFlags.register( cmd )
	return cmd
}

/*
 * revealAll decodes every image on a bounded number of workers.
 * Unreadable files abort the run, images without a message are reported
 * in their result.
 */
func(a *app) revealAll( ctx context.Context, files []string, pw stegutil.Password ) ([]revealResult, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	results := make( []revealResult, len(files) )
	g, ctx := errgroup.WithContext( ctx )
	g.SetLimit( a.conf.StegConfig.Workers )
	for i, file := range files {
		g.Go( func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			data, err := a.readInput( file )
			if err != nil {
				return err
			}
			msg, err := img.Reveal( data, pw )
			results[i] = revealResult{ msg, err }
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func(a *app) capacityCmd() *cobra.Command {
	return &cobra.Command{
		Use: "capacity <image> [image...]",
		Short: "Show how much text fits into images",
		Args: cobra.MinimumNArgs(1),
		RunE: func( cmd *cobra.Command, args []string ) error {
			for _, file := range args {
				data, err := a.readInput( file )
				if err != nil {
					return err
				}
				capacity, format, err := img.Capacity( data )
				if err != nil {
					return fmt.Errorf("%s: %w", file, err)
				}
				if capacity < 0 {
					fmt.Fprintf( a.out, "%s\t%s\tdepends on DCT coefficients\n", file, format )
					continue
				}
				fmt.Fprintf( a.out, "%s\t%s\t%s (%s characters of ASCII)\n", file, format,
					humanize.IBytes( uint64(capacity) ), humanize.Comma( int64(capacity) ))
			}
			return nil
		},
	}
}

func(a *app) genconfigCmd() *cobra.Command {
	var (
		encrypt	bool
		force	bool
	)
	cmd := &cobra.Command{
		Use: "genconfig",
		Short: "Write the default configuration",
		Args: cobra.NoArgs,
		// the current file may be missing or unreadable, do not load it
		PersistentPreRunE: func( cmd *cobra.Command, args []string ) error {
			a.conf = config.DefaultConfig()
			return nil
		},
		RunE: func( cmd *cobra.Command, args []string ) error {
			if _, err := os.Stat( a.configFile ); err == nil && force == false {
				return fmt.Errorf("%s already exists, use --force to overwrite", a.configFile)
			}
			if err := os.MkdirAll( filepath.Dir( a.configFile ), 0700 ); err != nil {
				return err
			}

			var key []byte
			if encrypt {
				password, err := util.GetPasswd("Configuration password: ")
				if err != nil {
					return err
				}
				salt, err := cryptography.GenRandom( cryptography.SaltSize )
				if err != nil {
					return err
				}
				key = cryptography.DeriveKey( password, salt )
				fmt.Fprintf( a.out, "[+] Configuration is encrypted. Set %s=%s to use it.\n",
					ConfigKeyVariableName, cryptography.JoinWithSalt( []byte("<password>"), salt ))
			}
			if err := config.SaveConfig( a.configFile, key, a.conf ); err != nil {
				return err
			}
			fmt.Fprintln( a.out, a.configFile )
			return nil
		},
	}
	cmd.Flags().BoolVar( &encrypt, "encrypt", false, "encrypt the configuration with a password" )
	cmd.Flags().BoolVar( &force, "force", false, "overwrite an existing configuration" )
	return cmd
}

package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"stegende/cryptography"
	"stegende/util"
)

const (
	DefaultMaxInputSize = 10 * 1024 * 1024	// same limit the upload form had
	DefaultWorkers = 4
)

/*
 * Configuration for steganography. Output format applies to decoys that
 * are re-encoded (PNG keeps hidden bits, JPEG does not unless the decoy
 * itself is a JPEG, then jsteg is used).
 */
type SteganoConfig struct {
	Folder		string	`yaml:"decoy_files_folder"`
	OutputFormat	string	`yaml:"output_format"`
	JpegQuality	int	`yaml:"jpeg_quality"`
	Workers		int	`yaml:"workers"`
	MaxInputSize	int64	`yaml:"max_input_size"`
}

type FullConfig struct {
	StegConfig	SteganoConfig	`yaml:"steganography_config"`
	Logger		util.LoggerInfo	`yaml:"logger_config"`
}

func DefaultConfig() *FullConfig {
	return &FullConfig{
		StegConfig: SteganoConfig{
			Folder: "",
			OutputFormat: "png",
			JpegQuality: 95,
			Workers: DefaultWorkers,
			MaxInputSize: DefaultMaxInputSize,
		},
		Logger: util.LoggerInfo{
			Filename: "",
			IsColored: true,
			SaveTime: true,
			Mode: util.Error | util.Warning,
		},
	}
}

// Validate fills zero values with defaults and rejects nonsense.
func(c *FullConfig) Validate() error {
	def := DefaultConfig()
	if c.StegConfig.OutputFormat == "" {
		c.StegConfig.OutputFormat = def.StegConfig.OutputFormat
	}
	if c.StegConfig.Workers <= 0 {
		c.StegConfig.Workers = def.StegConfig.Workers
	}
	if c.StegConfig.MaxInputSize <= 0 {
		c.StegConfig.MaxInputSize = def.StegConfig.MaxInputSize
	}
	if c.StegConfig.JpegQuality == 0 {
		c.StegConfig.JpegQuality = def.StegConfig.JpegQuality
	}
	if c.StegConfig.JpegQuality < 1 || c.StegConfig.JpegQuality > 100 {
		return fmt.Errorf("jpeg_quality must be within 1..100, got %d", c.StegConfig.JpegQuality)
	}
	return nil
}

/*
 * Functions for loading and saving configuration in YAML format.
 * A nil key means the file is stored as plain YAML.
 */
func LoadConfig(filename string, key []byte) (*FullConfig, error) {
	data, err := LoadEncrypted(filename, key)
	if err != nil {
		return nil, err
	}

	conf := DefaultConfig()
	if err := yaml.Unmarshal(data, conf); err != nil {
		return nil, err
	}
	if err := conf.Validate(); err != nil {
		return nil, err
	}
	return conf, nil
}

func SaveConfig(filename string, key []byte, c *FullConfig) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return SaveEncrypted(filename, key, data)
}

/*
 * Functions for saving and loading encrypted files.
 */
func LoadEncrypted(filename string, key []byte) ([]byte, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	if len(key) == cryptography.SymKeySize {
		pt, err := cryptography.Decrypt(data, key)
		if err != nil {
			return nil, fmt.Errorf("failed to decrypt configuration (invalid password?): %w", err)
		}
		return pt, nil
	}
	// return unencrypted data
	return data, nil
}

func SaveEncrypted(filename string, key, data []byte) error {

	var err error
	if len(key) == cryptography.SymKeySize {
		data, err = cryptography.Encrypt(data, key)
		if err != nil {
			return err
		}
	}
	return os.WriteFile(filename, data, 0600)
}

// KeyFromEnv derives the configuration key from "<base64 salt>:<password>".
// An empty value means the configuration is not encrypted.
func KeyFromEnv(value string) ([]byte, error) {
	if value == "" {
		return nil, nil
	}
	pass, saltBytes, err := cryptography.SplitWithSalt(value)
	if err != nil {
		return nil, err
	}
	return cryptography.DeriveKey(pass, saltBytes), nil
}

package config
import (
	"os"
	"path/filepath"
	"testing"

	"stegende/cryptography"
	"stegende/util"
)

func TestSaveAndLoadConfig( t *testing.T ) {
	conf := FullConfig{
		SteganoConfig{ "decoys", "bmp", 80, 2, 1024 },
		util.LoggerInfo{ Filename: "test.log", Mode: util.Error },
	}
	salt, _ := cryptography.GenRandom( cryptography.SaltSize )
	for _, key := range [][]byte{ nil, cryptography.DeriveKey( []byte("test-password"), salt ) } {
		filename := filepath.Join( t.TempDir(), "stegende.yaml" )
		if err := SaveConfig( filename, key, &conf ); err != nil {
			t.Fatalf("Failed to save configuration: %s", err.Error())
		}
		conf2, err := LoadConfig( filename, key )
		if err != nil {
			t.Fatalf("Failed to load configuration: %s", err.Error())
		}
		if *conf2 != conf {
			t.Errorf("[CRITICAL] Configuration was changed during save/load: %+v != %+v", *conf2, conf)
		}
	}
}

func TestEncryptedConfigWrongKey( t *testing.T ) {
	salt, _ := cryptography.GenRandom( cryptography.SaltSize )
	filename := filepath.Join( t.TempDir(), "stegende.yaml" )
	if err := SaveConfig( filename, cryptography.DeriveKey( []byte("right"), salt ), DefaultConfig() ); err != nil {
		t.Fatalf("Failed to save configuration: %s", err.Error())
	}
	if _, err := LoadConfig( filename, cryptography.DeriveKey( []byte("wrong"), salt ) ); err == nil {
		t.Errorf("Configuration decrypted with a wrong key")
	}
}

func TestDefaultsFilled( t *testing.T ) {
	filename := filepath.Join( t.TempDir(), "partial.yaml" )
	data := []byte("steganography_config:\n  decoy_files_folder: /tmp/decoys\n")
	if err := os.WriteFile( filename, data, 0600 ); err != nil {
		t.Fatal(err)
	}
	conf, err := LoadConfig( filename, nil )
	if err != nil {
		t.Fatalf("Failed to load configuration: %s", err.Error())
	}
	if conf.StegConfig.Folder != "/tmp/decoys" || conf.StegConfig.OutputFormat != "png" ||
		conf.StegConfig.Workers != DefaultWorkers || conf.StegConfig.MaxInputSize != DefaultMaxInputSize {
		t.Errorf("Defaults were not applied: %+v", conf.StegConfig)
	}
	if conf.Logger.Mode != util.Error | util.Warning {
		t.Errorf("Default logger mode lost: %d", conf.Logger.Mode)
	}
}

func TestInvalidQuality( t *testing.T ) {
	conf := DefaultConfig()
	conf.StegConfig.JpegQuality = 101
	if err := conf.Validate(); err == nil {
		t.Errorf("jpeg_quality 101 was accepted")
	}
}

func TestKeyFromEnv( t *testing.T ) {
	key, err := KeyFromEnv("")
	if err != nil || key != nil {
		t.Errorf("Empty value should mean no key: %v %v", key, err)
	}
	salt, _ := cryptography.GenRandom( cryptography.SaltSize )
	key, err = KeyFromEnv( cryptography.JoinWithSalt( []byte("pw"), salt ) )
	if err != nil || len(key) != cryptography.SymKeySize {
		t.Errorf("Failed to derive key: %v", err)
	}
	if _, err := KeyFromEnv("no-salt-here"); err == nil {
		t.Errorf("Value without salt was accepted")
	}
}

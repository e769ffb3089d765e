package util
import (
	"fmt"
	"os"
	"strings"
	"path/filepath"
)

var DecoyExtensions = []string{ "png", "bmp", "gif", "jpg", "jpeg" }

func PickFileAtRandom( files []string ) (string, []string) {
	idx := RandInt( len(files) )
	file := files[idx]
	files = append( files[:idx], files[idx+1:]... )
	return file, files
}

func ReadFiles( folder string, supportedExtensions []string ) ([]string, error) {
	allFiles, err := os.ReadDir( folder )
	if err != nil {
		return nil, err
	}
	result := []string{}
	for _, f := range allFiles {
		if f.IsDir() {
			continue
		}
		name := strings.ToLower( f.Name() )
		for _, ext := range supportedExtensions {
			if strings.HasSuffix( name, "." + ext ) {
				result = append( result, filepath.Join( folder, f.Name() ) )
				break
			}
		}
	}
	return result, nil
}

// PickDecoy returns a random image from the decoy folder.
func PickDecoy( folder string ) (string, error) {
	files, err := ReadFiles( folder, DecoyExtensions )
	if err != nil {
		return "", err
	}
	if len(files) == 0 {
		return "", fmt.Errorf("no decoy images in %s", folder)
	}
	file, _ := PickFileAtRandom( files )
	return file, nil
}

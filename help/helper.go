package help

import (
	"os"
	"os/user"
	"path/filepath"
)

func HomeDir() string {
	if h := os.Getenv("HOME"); h != "" {
		return h
	}
	if u, err := user.Current(); err == nil {
		return u.HomeDir
	}
	// Windows fallback
	if h := os.Getenv("USERPROFILE"); h != "" {
		return h
	}
	return "." // last resort: current dir
}

// ConfigPath is where segbar looks for its settings unless --config says otherwise.
func ConfigPath() string {
	return filepath.Join(HomeDir(), ".config", "segbar.json")
}

func KubeconfigPath() string {
	if p := os.Getenv("KUBECONFIG"); p != "" {
		return p
	}
	return filepath.Join(HomeDir(), ".kube", "config")
}

// LogPath is the default log destination. The terminal belongs to the UI.
func LogPath() string {
	return filepath.Join(os.TempDir(), "segbar.log")
}

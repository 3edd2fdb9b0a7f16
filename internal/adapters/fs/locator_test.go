package fs_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/ormwire/internal/adapters/fs"
	"go.trai.ch/ormwire/internal/core/domain"
)

func TestLocator_Detect(t *testing.T) {
	tests := []struct {
		name      string
		files     []string
		wantFound bool
		want      domain.BundleMapping
	}{
		{
			name:      "xml mapping",
			files:     []string{"Resources/config/doctrine/User.orm.xml"},
			wantFound: true,
			want:      domain.BundleMapping{Type: "xml", Dir: "Resources/config/doctrine", Prefix: `Acme\Blog\Entity`},
		},
		{
			name:      "yml mapping",
			files:     []string{"Resources/config/doctrine/User.orm.yml"},
			wantFound: true,
			want:      domain.BundleMapping{Type: "yml", Dir: "Resources/config/doctrine", Prefix: `Acme\Blog\Entity`},
		},
		{
			name:      "xml wins over yml",
			files:     []string{"Resources/config/doctrine/A.orm.yml", "Resources/config/doctrine/B.orm.xml"},
			wantFound: true,
			want:      domain.BundleMapping{Type: "xml", Dir: "Resources/config/doctrine", Prefix: `Acme\Blog\Entity`},
		},
		{
			name:      "config files win over entity dir",
			files:     []string{"Resources/config/doctrine/User.orm.php", "Entity/User.php"},
			wantFound: true,
			want:      domain.BundleMapping{Type: "php", Dir: "Resources/config/doctrine", Prefix: `Acme\Blog\Entity`},
		},
		{
			name:      "annotation fallback",
			files:     []string{"Entity/User.php"},
			wantFound: true,
			want:      domain.BundleMapping{Type: "annotation", Dir: "Entity", Prefix: `Acme\Blog\Entity`},
		},
		{
			name:  "nothing to detect",
			files: []string{"Controller/HomeController.php", "Resources/config/doctrine/README.md"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := t.TempDir()
			for _, f := range tt.files {
				writeFile(t, filepath.Join(root, filepath.FromSlash(f)), "")
			}

			got, found, err := fs.NewLocator().Detect(domain.Bundle{
				Name:      "AcmeBlogBundle",
				Namespace: `Acme\Blog`,
				Path:      root,
			})

			require.NoError(t, err)
			assert.Equal(t, tt.wantFound, found)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLocator_Detect_MissingBundleDir(t *testing.T) {
	_, found, err := fs.NewLocator().Detect(domain.Bundle{
		Name:      "GhostBundle",
		Namespace: "Ghost",
		Path:      filepath.Join(t.TempDir(), "missing"),
	})

	require.NoError(t, err)
	assert.False(t, found)
}

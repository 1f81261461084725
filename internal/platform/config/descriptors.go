package config

import (
	"path/filepath"

	"github.com/jsamuelsen11/emuctl/internal/domain/emulator"
	"github.com/jsamuelsen11/emuctl/internal/recipe"
)

// Descriptors returns the service descriptors declared by the config.
func (c *Config) Descriptors() emulator.Set {
	descriptors := make([]emulator.Descriptor, 0, len(c.Services))
	for name, svc := range c.Services {
		descriptors = append(descriptors, emulator.Descriptor{
			Name:    name,
			Port:    svc.Port,
			Enabled: svc.Enabled,
		})
	}
	return emulator.NewSet(descriptors...)
}

// RecipeOptions maps the config onto the renderer's options.
func (c *Config) RecipeOptions() recipe.Options {
	opts := recipe.DefaultOptions()

	opts.ProjectName = c.Project.Name
	opts.ProjectID = c.Project.ID
	opts.DataVolume = c.Project.DataVolume
	opts.DataDir = c.Project.DataDir
	opts.EndpointHost = c.Project.EndpointHost
	opts.ListenHost = c.Project.ListenHost

	opts.BaseImage = c.Build.BaseImage
	opts.SystemInstall = c.Build.SystemInstall
	opts.SystemPackage = c.Build.SystemPackage
	opts.CLIPackage = c.Build.CLIPackage
	opts.WorkDir = c.Build.WorkDir

	opts.DockerfileName = c.Toolchain.Dockerfile
	opts.ComposeFileName = c.Toolchain.ComposeFile
	opts.EmulatorConfigName = c.Toolchain.EmulatorConfig

	return opts
}

// ProjectDir returns the directory the artifacts are written to and the
// toolchain runs in. A relative project.dir is resolved against the
// descriptor file's directory.
func (c *Config) ProjectDir() string {
	if filepath.IsAbs(c.Project.Dir) || c.Source == "" {
		return filepath.Clean(c.Project.Dir)
	}
	return filepath.Join(filepath.Dir(c.Source), c.Project.Dir)
}

// ComposeFilePath returns the absolute-or-relative path of the rendered
// orchestration recipe.
func (c *Config) ComposeFilePath() string {
	return filepath.Join(c.ProjectDir(), c.Toolchain.ComposeFile)
}

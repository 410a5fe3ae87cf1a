/*
Copyright 2024 The Cloudconstructs Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

// awscache renders, plans and deploys cache cluster constructs described in
// YAML configuration files.
package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-logr/zapr"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	kingpin "gopkg.in/alecthomas/kingpin.v2"
	"sigs.k8s.io/yaml"

	"github.com/crossplane/crossplane-runtime/pkg/logging"

	"github.com/cloudconstructs/awscache/pkg/clients"
	"github.com/cloudconstructs/awscache/pkg/clients/ec2"
	"github.com/cloudconstructs/awscache/pkg/clients/elasticache"
	"github.com/cloudconstructs/awscache/pkg/construct"
	"github.com/cloudconstructs/awscache/pkg/deploy"
)

const (
	errReadConfig  = "cannot read cluster configuration"
	errParseConfig = "cannot parse cluster configuration"
	errNoName      = "cluster configuration must set a name"
)

// clusterFile is the on-disk shape of a cluster configuration.
type clusterFile struct {
	// Name of the cluster construct, which is also the cache cluster ID.
	Name string `json:"name"`

	// Cluster is the desired cluster configuration.
	Cluster construct.ClusterConfig `json:"cluster"`
}

func loadCluster(path string) (*construct.Cluster, error) {
	b, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, errors.Wrap(err, errReadConfig)
	}
	var cf clusterFile
	if err := yaml.Unmarshal(b, &cf); err != nil {
		return nil, errors.Wrap(err, errParseConfig)
	}
	if cf.Name == "" {
		return nil, errors.New(errNoName)
	}
	return construct.New(cf.Name, cf.Cluster), nil
}

func main() {
	var (
		app    = kingpin.New(filepath.Base(os.Args[0]), "Renders, plans and deploys AWS cache cluster constructs.").DefaultEnvars()
		debug  = app.Flag("debug", "Run with debug logging.").Short('d').Bool()
		region = app.Flag("region", "AWS region to deploy into. Overrides the configured region.").String()

		render     = app.Command("render", "Render the construct's resource descriptions as YAML.")
		renderFile = render.Arg("config", "Path to the cluster configuration file.").Required().String()

		plan     = app.Command("plan", "Show the steps a deployment would take.")
		planFile = plan.Arg("config", "Path to the cluster configuration file.").Required().String()

		dep     = app.Command("deploy", "Materialize the construct against AWS.")
		depFile = dep.Arg("config", "Path to the cluster configuration file.").Required().String()
	)
	cmd := kingpin.MustParse(app.Parse(os.Args[1:]))

	zcfg := zap.NewProductionConfig()
	if *debug {
		zcfg = zap.NewDevelopmentConfig()
	}
	zl, err := zcfg.Build()
	kingpin.FatalIfError(err, "cannot build logger")
	log := logging.NewLogrLogger(zapr.NewLogger(zl).WithName("awscache"))

	switch cmd {
	case render.FullCommand():
		kingpin.FatalIfError(runRender(*renderFile), "cannot render construct")
	case plan.FullCommand():
		kingpin.FatalIfError(runPlan(*planFile), "cannot plan deployment")
	case dep.FullCommand():
		kingpin.FatalIfError(runDeploy(context.Background(), *depFile, *region, log), "cannot deploy construct")
	}
}

func runRender(path string) error {
	c, err := loadCluster(path)
	if err != nil {
		return err
	}
	b, err := c.Manifests()
	if err != nil {
		return err
	}
	_, err = os.Stdout.Write(b)
	return err
}

func runPlan(path string) error {
	c, err := loadCluster(path)
	if err != nil {
		return err
	}
	steps, err := deploy.Plan(c)
	if err != nil {
		return err
	}
	for _, s := range steps {
		fmt.Println(s)
	}
	return nil
}

func runDeploy(ctx context.Context, path, region string, log logging.Logger) error {
	c, err := loadCluster(path)
	if err != nil {
		return err
	}
	if region == "" {
		region = clients.StringValue(c.Resources().CacheCluster.Spec.ForProvider.Region)
	}

	cfg, err := clients.GetConfig(ctx, region)
	if err != nil {
		return err
	}
	d := deploy.NewDeployer(elasticache.NewClient(*cfg), ec2.NewClient(*cfg), deploy.WithLogger(log))

	if err := d.Apply(ctx, c); err != nil {
		return err
	}
	if err := d.Observe(ctx, c); err != nil {
		return err
	}

	fmt.Printf("status: %s\n", c.Status())
	fmt.Printf("endpoint: %s:%s\n", c.Endpoint(), c.EndpointPort())
	return nil
}

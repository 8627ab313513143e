package stage

import (
	"context"
)

const discoverStage = "discover"

// discoverRunner lists the manifests a clean would run on.
func discoverRunner(ctx context.Context, in Envelope, deps Deps) (Envelope, error) {
	log := deps.logger()
	d, err := newDispatcher(in.Settings, log)
	if err != nil {
		return Envelope{}, err
	}
	out := in
	out.Manifests = d.Select(walkEntries(in.Settings, log))
	if out.Manifests == nil {
		out.Manifests = []string{}
	}
	log.Debug("discovered manifests", "root", in.Settings.Root, "count", len(out.Manifests))
	return out, nil
}

func init() { Register(discoverStage, discoverRunner) }

package tabledataset

import "github.com/datalift/tablegate/dataset"

func init() {
	dataset.Register(dataset.Entry{
		Name:        "table",
		Description: "Base table dataset: overwrite and append write modes",
		Create: func(ctx dataset.CreateContext) (dataset.Dataset, error) {
			opts, err := OptionsFromConfig(ctx.Options)
			if err != nil {
				return nil, err
			}
			return New(ctx.Engine, opts, ctx.Logger)
		},
	})
	dataset.Register(dataset.Entry{
		Name:        "managed_table",
		Description: "Managed table dataset: adds upsert keyed on primary_key",
		Create: func(ctx dataset.CreateContext) (dataset.Dataset, error) {
			opts, err := OptionsFromConfig(ctx.Options)
			if err != nil {
				return nil, err
			}
			return NewManaged(ctx.Engine, opts, ctx.Logger)
		},
	})
}

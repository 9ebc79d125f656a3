package ngdoc

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveTitle(t *testing.T) {
	tests := []struct {
		name       string
		kind       string
		module     string
		want       Title
		wantModule string
	}{
		{
			name:       "myApp.directive:myThing",
			want:       Title{Name: "myThing", Kind: "directive", ComponentType: "module", Component: "myApp", Matched: true},
			wantModule: "myApp",
		},
		{
			name:       "$http:badreq",
			kind:       KindError,
			want:       Title{Name: "$http:badreq", Kind: "error", ComponentType: "component", Component: "$http", Matched: true},
			wantModule: "$http",
		},
		{
			name:       "angular.Module",
			want:       Title{Name: "Module", Kind: "Type", ComponentType: "module", Component: "ng", Matched: true},
			wantModule: "ng",
		},
		{
			name:       "angular.bootstrap",
			want:       Title{Name: "angular.bootstrap", Kind: "API", ComponentType: "module", Component: "ng", Matched: true},
			wantModule: "ng",
		},
		{
			name:       "ui.grid",
			kind:       KindOverview,
			want:       Title{Name: "", ComponentType: "module", Component: "ui.grid", Matched: true},
			wantModule: "ui.grid",
		},
		{
			name:       "grid",
			want:       Title{Name: "grid", ComponentType: "module", Component: "grid", Matched: true},
			wantModule: "grid",
		},
		{
			name:       "angular.mock.inject",
			want:       Title{Name: "angular.mock.inject", Kind: "API", ComponentType: "module", Component: "ng", Matched: true},
			wantModule: "ng",
		},
		{
			name:       "myApp.controller:MainCtrl",
			kind:       KindController,
			want:       Title{Name: "MainCtrl", Kind: "controller", ComponentType: "module", Component: "myApp", Matched: true},
			wantModule: "myApp",
		},
		{
			name:       "ui.grid.components:uiGridHeader",
			want:       Title{Name: "uiGridHeader", Kind: "component", ComponentType: "module", Component: "ui.grid", Matched: true},
			wantModule: "ui.grid",
		},
		{
			name:       "ng.directive:input.checkbox",
			want:       Title{Name: "input [checkbox]", Kind: "directive", ComponentType: "module", Component: "ng", Matched: true},
			wantModule: "ng",
		},
		{
			name:       "ui.grid.service:gridUtil",
			want:       Title{Name: "gridUtil", Kind: "service", ComponentType: "module", Component: "ui.grid", Matched: true},
			wantModule: "ui.grid",
		},
		{
			name:       "ui.grid.api:PublicApi",
			kind:       KindObject,
			want:       Title{Name: "PublicApi", Kind: "object", ComponentType: "module", Component: "ui.grid", Matched: true},
			wantModule: "ui.grid",
		},
		{
			name:       "ui.grid.class.GridRow",
			kind:       KindType,
			module:     "ui.grid",
			want:       Title{Name: "GridRow", Kind: "type", ComponentType: "module", Component: "ui.grid", Matched: true},
			wantModule: "ui.grid",
		},
		{
			name:       "ui.grid.uiGridConstantsProvider",
			want:       Title{Name: "uiGridConstants", Kind: "service", ComponentType: "module", Component: "ui.grid", Matched: true},
			wantModule: "ui.grid",
		},
		{
			name:       "ui.grid.edit",
			kind:       KindOverview,
			want:       Title{Name: "", ComponentType: "module", Component: "ui.grid.edit", Matched: true},
			wantModule: "ui.grid.edit",
		},
		{
			name:       "angular.ng",
			module:     "custom",
			want:       Title{Name: "angular.ng", Kind: "API", ComponentType: "module", Component: "ng", Matched: true},
			wantModule: "custom",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := &Doc{Name: tt.name, Kind: tt.kind, ModuleName: tt.module}
			assert.Equal(t, tt.want, resolveTitle(d))
			assert.Equal(t, tt.wantModule, d.ModuleName)
		})
	}
}

func TestResolveTitle_ControllerNeedsKind(t *testing.T) {
	d := &Doc{Name: "myApp.controller:MainCtrl", Kind: KindFunction}
	got := resolveTitle(d)
	assert.Equal(t, "function", got.Kind)
	assert.Equal(t, "MainCtrl", got.Name)
}

func TestResolveTitle_AngularModuleMapsToNg(t *testing.T) {
	d := &Doc{Name: "angular.scope.Scope", Kind: KindType}
	got := resolveTitle(d)
	assert.Equal(t, "angular", got.Component)
	assert.Equal(t, "ng", d.ModuleName)
}

func TestTitle_String(t *testing.T) {
	assert.Equal(t, "myThing (directive in module myApp)", Title{Name: "myThing", Kind: "directive", ComponentType: "module", Component: "myApp"}.String())
	assert.Equal(t, "raw name", Title{Name: "raw name"}.String())
}

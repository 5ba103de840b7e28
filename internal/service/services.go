package service

import (
	"github.com/coffeescripttech-maker/biscas-learning-module-sub006/internal/service/auth"
	"github.com/coffeescripttech-maker/biscas-learning-module-sub006/internal/service/class"
	"github.com/coffeescripttech-maker/biscas-learning-module-sub006/internal/service/editor"
	"github.com/coffeescripttech-maker/biscas-learning-module-sub006/internal/service/module"
	"github.com/coffeescripttech-maker/biscas-learning-module-sub006/internal/service/progress"
)

type Collection struct {
	*auth.AuthService
	*module.ModuleService
	*editor.EditorService
	*class.ClassService
	*progress.ProgressService
}

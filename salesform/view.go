package salesform

import (
	"html/template"

	"github.com/G-Node/salesform/salesform/form"
)

// formView is the template data of the form page.
type formView struct {
	Name         string
	Description  template.HTML
	Sections     []sectionView
	Messages     []string
	ShowMessages bool
	Result       *form.Result
}

type sectionView struct {
	Index       int
	ID          string
	Title       string
	Description template.HTML
	Expanded    bool
	Indicator   string
	Blocks      []blockView
}

// blockView is a run of consecutive elements sharing the same group.
type blockView struct {
	Group    string
	Visible  bool
	Elements []elementView
}

type elementView struct {
	form.Element
	Value string
}

func newFormView(ctrl *form.Controller, result *form.Result) formView {
	f := ctrl.Form()
	view := formView{
		Name:         f.Name,
		Description:  f.DescriptionHTML(),
		Sections:     make([]sectionView, len(f.Sections)),
		Messages:     ctrl.Messages(),
		ShowMessages: ctrl.MessagesVisible(),
		Result:       result,
	}
	for idx, section := range f.Sections {
		sv := sectionView{
			Index:       idx,
			ID:          section.ID,
			Title:       section.Title,
			Description: section.DescriptionHTML(),
			Expanded:    ctrl.Expanded(idx),
			Indicator:   ctrl.Indicator(idx),
		}
		for _, elem := range section.Elements {
			nblocks := len(sv.Blocks)
			if nblocks == 0 || sv.Blocks[nblocks-1].Group != elem.Group {
				sv.Blocks = append(sv.Blocks, blockView{Group: elem.Group, Visible: ctrl.Visible(elem.Group)})
				nblocks++
			}
			block := &sv.Blocks[nblocks-1]
			block.Elements = append(block.Elements, elementView{Element: elem, Value: ctrl.Value(elem.Name)})
		}
		view.Sections[idx] = sv
	}
	return view
}

// sectionState is the JSON form of a section.
type sectionState struct {
	Index     int    `json:"index"`
	ID        string `json:"id"`
	Title     string `json:"title"`
	Expanded  bool   `json:"expanded"`
	Indicator string `json:"indicator"`
}

// stateView is the JSON form of a controller.
type stateView struct {
	Sections       []sectionState    `json:"sections"`
	Visible        map[string]bool   `json:"visible"`
	Values         map[string]string `json:"values"`
	Messages       []string          `json:"messages"`
	ShowMessages   bool              `json:"show_messages"`
	CurrentSection int               `json:"current_section"`
}

func newStateView(ctrl *form.Controller) stateView {
	st := ctrl.State()
	view := stateView{
		Sections:       make([]sectionState, ctrl.NumSections()),
		Visible:        st.Visible,
		Values:         st.Values,
		Messages:       st.Messages,
		ShowMessages:   st.ShowMessages,
		CurrentSection: st.CurrentSection,
	}
	for idx, section := range ctrl.Form().Sections {
		view.Sections[idx] = sectionState{
			Index:     idx,
			ID:        section.ID,
			Title:     section.Title,
			Expanded:  ctrl.Expanded(idx),
			Indicator: ctrl.Indicator(idx),
		}
	}
	return view
}

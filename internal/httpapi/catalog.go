package httpapi

import "net/http"

func (s *Server) handleListCustomers(w http.ResponseWriter, r *http.Request) {
	customers, err := s.catalog.ListCustomers(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	out := make([]customerDTO, 0, len(customers))
	for _, c := range customers {
		out = append(out, toCustomerDTO(c))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleCreateCustomer(w http.ResponseWriter, r *http.Request) {
	var req customerDTO
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	c, err := s.catalog.CreateCustomer(r.Context(), req.model())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, toCustomerDTO(c))
}

func (s *Server) handleGetCustomer(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	c, err := s.catalog.GetCustomer(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toCustomerDTO(c))
}

func (s *Server) handleListMaterials(w http.ResponseWriter, r *http.Request) {
	materials, err := s.catalog.ListMaterials(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	out := make([]materialDTO, 0, len(materials))
	for _, m := range materials {
		out = append(out, toMaterialDTO(m))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleCreateMaterial(w http.ResponseWriter, r *http.Request) {
	req := materialDTO{DensityLbIn3: 0.283}
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	m, err := s.catalog.CreateMaterial(r.Context(), req.model())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, toMaterialDTO(m))
}

func (s *Server) handleGetMaterial(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	m, err := s.catalog.GetMaterial(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toMaterialDTO(m))
}

func (s *Server) handleListMachines(w http.ResponseWriter, r *http.Request) {
	machines, err := s.catalog.ListMachines(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	out := make([]machineDTO, 0, len(machines))
	for _, m := range machines {
		out = append(out, toMachineDTO(m))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleCreateMachine(w http.ResponseWriter, r *http.Request) {
	var req machineDTO
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	m, err := s.catalog.CreateMachine(r.Context(), req.model())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, toMachineDTO(m))
}

func (s *Server) handleGetMachine(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	m, err := s.catalog.GetMachine(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toMachineDTO(m))
}

func (s *Server) handleListParts(w http.ResponseWriter, r *http.Request) {
	parts, err := s.catalog.ListParts(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	out := make([]partDTO, 0, len(parts))
	for _, p := range parts {
		out = append(out, toPartDTO(p))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleCreatePart(w http.ResponseWriter, r *http.Request) {
	var req partDTO
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	p, err := s.catalog.CreatePart(r.Context(), req.model())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, toPartDTO(p))
}

func (s *Server) handleGetPart(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	p, err := s.catalog.GetPart(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toPartDTO(p))
}

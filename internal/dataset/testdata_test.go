package dataset

const sampleCollection = `{
  "type": "FeatureCollection",
  "features": [
    {
      "type": "Feature",
      "geometry": {"type": "LineString", "coordinates": [[-49.27, -25.48], [-49.26, -25.47]]},
      "properties": {"id_trip": 101, "id_traj": 1, "id_driver": "D1", "speed": 35.5,
        "date_d": "2023-03-01", "bairro": "Centro", "cidade": "Curitiba", "hierarquia": "Via Local"}
    },
    {
      "type": "Feature",
      "geometry": {"type": "MultiLineString", "coordinates": [[[-49.25, -25.46], [-49.24, -25.45]], [[-49.24, -25.45], [-49.23, -25.44]]]},
      "properties": {"id_trip": "102", "id_traj": 2, "id_driver": "D2", "speed": "70.2",
        "date_d": "2023-03-02 08:15:00", "bairro": "Batel", "cidade": "Curitiba"}
    },
    {
      "type": "Feature",
      "geometry": {"type": "LineString", "coordinates": [[-49.22, -25.43], [-49.21, -25.42]]},
      "properties": {"id_trip": 103, "id_traj": 3, "id_driver": "D1", "bairro": "Centro"}
    },
    {
      "type": "Feature",
      "geometry": {"type": "LineString", "coordinates": [[5500000.0, -2900000.0], [5500100.0, -2900100.0]]},
      "properties": {"id_trip": 104, "id_traj": 4, "id_driver": "D3", "speed": 12}
    }
  ]
}`
